package app

import (
	"context"
	"testing"

	"github.com/iov-one/lockchain/chaintest"
	"github.com/iov-one/lockchain/chaintest/assert"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/x/utils"
)

func TestChain(t *testing.T) {
	c1 := &chaintest.Decorator{}
	c2 := &chaintest.Decorator{}
	var c3 *chaintest.Decorator
	h := &chaintest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		c3,
		c2,
	).WithHandler(h)

	ctx := context.Background()
	_, err := stack.Check(ctx, nil, &chaintest.Tx{})
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, nil, &chaintest.Tx{})
	assert.Nil(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// An error in the middle of the chain stops the execution.
	c2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, nil, &chaintest.Tx{})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 3, c1.CallCount())
	assert.Equal(t, 3, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainExtend(t *testing.T) {
	c1 := &chaintest.Decorator{}
	c2 := &chaintest.Decorator{}
	h := &chaintest.Handler{}

	base := ChainDecorators(c1)
	extended := base.Chain(c2)

	_, err := base.WithHandler(h).Deliver(context.Background(), nil, &chaintest.Tx{})
	assert.Nil(t, err)
	assert.Equal(t, 0, c2.CallCount())

	_, err = extended.WithHandler(h).Deliver(context.Background(), nil, &chaintest.Tx{})
	assert.Nil(t, err)
	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 1, c2.CallCount())
}
