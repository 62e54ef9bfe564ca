package cash

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r lockchain.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
	r.Handle(&ApproveMsg{}, NewApproveHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ lockchain.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and authorized.
func (h SendHandler) Check(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &lockchain.CheckResult{}, nil
}

// Deliver moves the tokens from source to receiver if all preconditions
// are met.
func (h SendHandler) Deliver(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.DeliverResult, error) {
	msg, src, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(ctx, db, src, msg.Destination, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "transfer")
	}
	return &lockchain.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx lockchain.Context, tx lockchain.Tx) (*SendMsg, lockchain.Address, error) {
	var msg SendMsg
	if err := lockchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	src := x.AddressOrMainSigner(ctx, h.auth, msg.Source)
	if src == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	if !h.auth.HasAddress(ctx, src) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, src, nil
}

// ApproveHandler will handle setting allowances.
type ApproveHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ lockchain.Handler = ApproveHandler{}

// NewApproveHandler creates a handler for ApproveMsg
func NewApproveHandler(auth x.Authenticator, control Controller) ApproveHandler {
	return ApproveHandler{
		auth:    auth,
		control: control,
	}
}

func (h ApproveHandler) Check(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &lockchain.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Approve(db, owner, msg.Spender, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "approve")
	}
	return &lockchain.DeliverResult{}, nil
}

func (h ApproveHandler) validate(ctx lockchain.Context, tx lockchain.Tx) (*ApproveMsg, lockchain.Address, error) {
	var msg ApproveMsg
	if err := lockchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner := x.AddressOrMainSigner(ctx, h.auth, msg.Owner)
	if owner == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	if !h.auth.HasAddress(ctx, owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, owner, nil
}
