package app

import (
	"fmt"

	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/errors"
)

// Router allows us to register many handlers with different paths and
// dispatch every transaction to the handler registered for its message path.
type Router struct {
	routes map[string]lockchain.Handler
}

var _ lockchain.Registry = (*Router)(nil)
var _ lockchain.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]lockchain.Handler),
	}
}

// Handle adds a new Handler for the given message type.
// Panics on duplicate registration or an invalid path.
func (r *Router) Handle(msg lockchain.Msg, h lockchain.Handler) {
	path := msg.Path()
	if !lockchain.IsValidPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is found,
// returns a noSuchPath Handler. Always returns a non-nil Handler.
func (r *Router) handler(path string) lockchain.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path: path}
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx lockchain.Context, store lockchain.KVStore, tx lockchain.Tx) (*lockchain.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return r.handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx lockchain.Context, store lockchain.KVStore, tx lockchain.Tx) (*lockchain.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return r.handler(msg.Path()).Deliver(ctx, store, tx)
}

// noSuchPathHandler return errors for everything
type noSuchPathHandler struct {
	path string
}

func (h noSuchPathHandler) Check(lockchain.Context, lockchain.KVStore, lockchain.Tx) (*lockchain.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h noSuchPathHandler) Deliver(lockchain.Context, lockchain.KVStore, lockchain.Tx) (*lockchain.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
