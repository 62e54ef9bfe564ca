package utils

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ lockchain.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx lockchain.Context, store lockchain.KVStore, tx lockchain.Tx, next lockchain.Checker) (_ *lockchain.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx lockchain.Context, store lockchain.KVStore, tx lockchain.Tx, next lockchain.Deliverer) (_ *lockchain.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
