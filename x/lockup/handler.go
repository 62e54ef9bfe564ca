package lockup

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r lockchain.Registry, auth x.Authenticator, engine *Engine) {
	r.Handle(&ConfigureMsg{}, &configureHandler{auth: auth, engine: engine})
	r.Handle(&OpenMsg{}, &openHandler{auth: auth, engine: engine})
	r.Handle(&DepositMsg{}, &depositHandler{auth: auth, engine: engine})
	r.Handle(&WithdrawMsg{}, &withdrawHandler{auth: auth, engine: engine})
}

// requireAdmin returns an error unless the configured admin signed the
// transaction.
func requireAdmin(ctx lockchain.Context, db lockchain.ReadOnlyKVStore, auth x.Authenticator) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, conf.Admin) {
		return errors.Wrap(errors.ErrUnauthorized, "admin signature missing")
	}
	return nil
}

type configureHandler struct {
	auth   x.Authenticator
	engine *Engine
}

func (h *configureHandler) Check(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockchain.CheckResult{}, nil
}

func (h *configureHandler) Deliver(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.engine.Configure(ctx, db, msg.Rates, msg.Boundaries); err != nil {
		return nil, err
	}
	return &lockchain.DeliverResult{}, nil
}

func (h *configureHandler) validate(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*ConfigureMsg, error) {
	var msg ConfigureMsg
	if err := lockchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireAdmin(ctx, db, h.auth); err != nil {
		return nil, err
	}
	if err := h.engine.requireNotOpened(db, ErrAlreadyLocked); err != nil {
		return nil, err
	}
	return &msg, nil
}

type openHandler struct {
	auth   x.Authenticator
	engine *Engine
}

func (h *openHandler) Check(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.CheckResult, error) {
	if err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockchain.CheckResult{}, nil
}

func (h *openHandler) Deliver(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.DeliverResult, error) {
	if err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	if err := h.engine.Open(ctx, db); err != nil {
		return nil, err
	}
	return &lockchain.DeliverResult{}, nil
}

func (h *openHandler) validate(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) error {
	var msg OpenMsg
	if err := lockchain.LoadMsg(tx, &msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	if err := requireAdmin(ctx, db, h.auth); err != nil {
		return err
	}
	return h.engine.requireNotOpened(db, ErrAlreadyOpen)
}

type depositHandler struct {
	auth   x.Authenticator
	engine *Engine
}

func (h *depositHandler) Check(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockchain.CheckResult{}, nil
}

func (h *depositHandler) Deliver(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.DeliverResult, error) {
	msg, depositor, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	rec, err := h.engine.Deposit(ctx, db, depositor, msg.Tier)
	if err != nil {
		return nil, err
	}
	raw, err := rec.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal record")
	}
	return &lockchain.DeliverResult{Data: raw}, nil
}

func (h *depositHandler) validate(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*DepositMsg, lockchain.Address, error) {
	var msg DepositMsg
	if err := lockchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	depositor := x.AddressOrMainSigner(ctx, h.auth, msg.Depositor)
	if depositor == nil || !h.auth.HasAddress(ctx, depositor) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "depositor signature missing")
	}
	// Fail early when the deposit cannot be accepted.
	if _, err := h.engine.Admit(ctx, db); err != nil {
		return nil, nil, err
	}
	switch _, err := h.engine.Record(db, depositor); {
	case err == nil:
		return nil, nil, errors.Wrapf(ErrDuplicateDeposit, "%s", depositor)
	case !ErrNoRecord.Is(err):
		return nil, nil, err
	}
	return &msg, depositor, nil
}

type withdrawHandler struct {
	auth   x.Authenticator
	engine *Engine
}

func (h *withdrawHandler) Check(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockchain.CheckResult{}, nil
}

func (h *withdrawHandler) Deliver(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (*lockchain.DeliverResult, error) {
	depositor, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	payout, err := h.engine.Withdraw(ctx, db, depositor)
	if err != nil {
		return nil, err
	}
	raw, err := payout.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal payout")
	}
	return &lockchain.DeliverResult{Data: raw, Log: payout.String()}, nil
}

func (h *withdrawHandler) validate(ctx lockchain.Context, db lockchain.KVStore, tx lockchain.Tx) (lockchain.Address, error) {
	var msg WithdrawMsg
	if err := lockchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	depositor := x.AddressOrMainSigner(ctx, h.auth, msg.Depositor)
	if depositor == nil || !h.auth.HasAddress(ctx, depositor) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "depositor signature missing")
	}
	rec, err := h.engine.Record(db, depositor)
	if err != nil {
		return nil, err
	}
	if rec.IsWithdrawn() {
		return nil, errors.Wrap(ErrAlreadyWithdrawn, "deposit released")
	}
	return depositor, nil
}
