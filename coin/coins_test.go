package coin

import (
	"testing"

	"github.com/iov-one/lockchain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineCoins(t *testing.T) {
	cs, err := CombineCoins(
		NewCoin(5, 0, "LCK"),
		NewCoin(1, 0, "ETH"),
		NewCoin(0, 0, "BTC"),
		NewCoin(2, 0, "LCK"),
	)
	require.NoError(t, err)
	assert.Equal(t, Coins{NewCoin(1, 0, "ETH"), NewCoin(7, 0, "LCK")}, cs)
	assert.NoError(t, cs.Validate())

	assert.Equal(t, NewCoin(7, 0, "LCK"), cs.Get("LCK"))
	assert.Equal(t, Zero("BTC"), cs.Get("BTC"))
	assert.True(t, cs.Contains(NewCoin(6, 0, "LCK")))
	assert.False(t, cs.Contains(NewCoin(8, 0, "LCK")))
	assert.False(t, cs.Contains(NewCoin(1, 0, "BTC")))

	_, err = CombineCoins(NewCoin(1, 0, "bad"))
	assert.True(t, errors.ErrCurrency.Is(err))
}

func TestCoinsSubtract(t *testing.T) {
	cs, err := CombineCoins(NewCoin(5, 0, "LCK"), NewCoin(1, 0, "ETH"))
	require.NoError(t, err)

	rest, err := cs.Subtract(NewCoin(5, 0, "LCK"))
	require.NoError(t, err)
	assert.Equal(t, Coins{NewCoin(1, 0, "ETH")}, rest)
	// Original set must not be modified.
	assert.Equal(t, NewCoin(5, 0, "LCK"), cs.Get("LCK"))

	neg, err := rest.Subtract(NewCoin(2, 0, "ETH"))
	require.NoError(t, err)
	assert.False(t, neg.IsNonNegative())

	empty, err := rest.Subtract(NewCoin(1, 0, "ETH"))
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestCoinsValidate(t *testing.T) {
	assert.NoError(t, Coins(nil).Validate())
	assert.Error(t, Coins{NewCoin(1, 0, "LCK"), NewCoin(1, 0, "ETH")}.Validate())
	assert.Error(t, Coins{NewCoin(0, 0, "LCK")}.Validate())
	assert.Error(t, Coins{NewCoin(1, 0, "LCK"), NewCoin(2, 0, "LCK")}.Validate())
}
