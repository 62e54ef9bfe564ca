package app

import (
	"reflect"

	"github.com/iov-one/lockchain"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []lockchain.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

	app.ChainDecorators(
	  utils.NewLogging(),
	  utils.NewRecovery(),
	  utils.NewSavepoint().OnDeliver(),
	).WithHandler(
	  router,
	)
*/
func ChainDecorators(chain ...lockchain.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...lockchain.Decorator) Decorators {
	newChain := make([]lockchain.Decorator, 0, len(d.chain)+len(chain))
	newChain = append(newChain, d.chain...)
	for _, dc := range chain {
		if !isNilDecorator(dc) {
			newChain = append(newChain, dc)
		}
	}
	return Decorators{newChain}
}

func isNilDecorator(d lockchain.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h lockchain.Handler) lockchain.Handler {
	// start wrapping the handler from last decorator to first one
	// as the top of the chain is understood to be executed first
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a
// specific Handler.
type step struct {
	d    lockchain.Decorator
	next lockchain.Handler
}

var _ lockchain.Handler = step{}

// Check passes the handler into the decorator, implements Handler
func (s step) Check(ctx lockchain.Context, store lockchain.KVStore, tx lockchain.Tx) (*lockchain.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

// Deliver passes the handler into the decorator, implements Handler
func (s step) Deliver(ctx lockchain.Context, store lockchain.KVStore, tx lockchain.Tx) (*lockchain.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
