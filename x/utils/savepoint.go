package utils

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/errors"
)

// Atomically executes given function using a cache wrapped store. All
// changes made by the function are written to the given store only if it
// returns no error. Otherwise every change is discarded.
//
// If the store cannot be cache wrapped, the function is executed directly.
func Atomically(db lockchain.KVStore, fn func(lockchain.KVStore) error) error {
	cstore, ok := db.(lockchain.CacheableKVStore)
	if !ok {
		return fn(db)
	}

	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ lockchain.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx lockchain.Context, store lockchain.KVStore, tx lockchain.Tx, next lockchain.Checker) (*lockchain.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	var res *lockchain.CheckResult
	err := Atomically(store, func(db lockchain.KVStore) error {
		var err error
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx lockchain.Context, store lockchain.KVStore, tx lockchain.Tx, next lockchain.Deliverer) (*lockchain.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	var res *lockchain.DeliverResult
	err := Atomically(store, func(db lockchain.KVStore) error {
		var err error
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
