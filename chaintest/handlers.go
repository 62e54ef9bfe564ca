package chaintest

import "github.com/iov-one/lockchain"

// Handler implements a mock of lockchain.Handler that counts the calls and
// returns configured results.
type Handler struct {
	checkCall   int
	CheckResult lockchain.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult lockchain.DeliverResult
	DeliverErr    error

	// OnDeliver if set is called when delivering. It can be used to
	// modify the state.
	OnDeliver func(lockchain.Context, lockchain.KVStore) error
}

var _ lockchain.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.DeliverResult, error) {
	h.deliverCall++
	if h.OnDeliver != nil {
		if err := h.OnDeliver(ctx, db); err != nil {
			return nil, err
		}
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CheckCallCount returns how many times the Check method was called.
func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

// DeliverCallCount returns how many times the Deliver method was called.
func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

// CallCount returns the total number of calls.
func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
