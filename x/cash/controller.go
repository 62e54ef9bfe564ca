package cash

import (
	"fmt"

	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/coin"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/orm"
)

// Receiver is notified about every transfer into the address it was
// registered for. Returning an error aborts the transfer.
type Receiver interface {
	Receive(ctx lockchain.Context, db lockchain.KVStore, from lockchain.Address, amount coin.Coin) error
}

// Controller is the functionality needed by the cash handlers.
type Controller interface {
	Balance(db lockchain.ReadOnlyKVStore, addr lockchain.Address) (coin.Coins, error)
	Transfer(ctx lockchain.Context, db lockchain.KVStore, src, dest lockchain.Address, amount coin.Coin) error
	Approve(db lockchain.KVStore, owner, spender lockchain.Address, amount coin.Coin) error
}

// BaseController is the default implementation of the asset ledger.
type BaseController struct {
	wallets    orm.ModelBucket
	allowances orm.ModelBucket
	receivers  map[string]Receiver
}

var _ Controller = (*BaseController)(nil)

// NewController returns a controller using default buckets.
func NewController() *BaseController {
	return &BaseController{
		wallets:    NewWalletBucket(),
		allowances: NewAllowanceBucket(),
		receivers:  make(map[string]Receiver),
	}
}

// RegisterReceiver assigns a receiver that is notified about all transfers
// into given address. Registering the same address twice panics.
// Use this function only during a program startup phase.
func (c *BaseController) RegisterReceiver(addr lockchain.Address, r Receiver) {
	if err := addr.Validate(); err != nil {
		panic(fmt.Sprintf("invalid receiver address: %s", err))
	}
	key := string(addr)
	if _, ok := c.receivers[key]; ok {
		panic(fmt.Sprintf("receiver already registered for %s", addr))
	}
	c.receivers[key] = r
}

// Balance returns all coins owned by given address. Empty set is returned
// for an address that never received anything.
func (c *BaseController) Balance(db lockchain.ReadOnlyKVStore, addr lockchain.Address) (coin.Coins, error) {
	w, err := c.wallet(db, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins, nil
}

func (c *BaseController) wallet(db lockchain.ReadOnlyKVStore, addr lockchain.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.wallets.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrap(err, "wallet")
	}
}

// CoinMint adds given amount to the wallet of the destination address.
func (c *BaseController) CoinMint(db lockchain.KVStore, dest lockchain.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "mint amount must be positive")
	}
	if err := c.accepts(db, amount); err != nil {
		return err
	}
	w, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if w.Coins, err = w.Coins.Add(amount); err != nil {
		return errors.Wrap(err, "mint")
	}
	return c.wallets.Put(db, dest, w)
}

// MoveCoins moves the given amount from src to dest. If src doesn't have
// sufficient coins, it fails. No receiver is notified.
func (c *BaseController) MoveCoins(db lockchain.KVStore, src, dest lockchain.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	if err := c.accepts(db, amount); err != nil {
		return err
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %s needed, %s available",
			amount, sender.Coins.Get(amount.Ticker))
	}
	if sender.Coins, err = sender.Coins.Subtract(amount); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := c.saveWallet(db, src, sender); err != nil {
		return err
	}

	// Recipient must be loaded after the sender is saved, in case both
	// are the same wallet.
	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return c.saveWallet(db, dest, recipient)
}

func (c *BaseController) saveWallet(db lockchain.KVStore, addr lockchain.Address, w *Wallet) error {
	if w.Coins.IsEmpty() {
		switch err := c.wallets.Delete(db, addr); {
		case err == nil, errors.ErrNotFound.Is(err):
			return nil
		default:
			return err
		}
	}
	return c.wallets.Put(db, addr, w)
}

// Transfer moves coins from src to dest. If a receiver is registered for
// the destination address, it is notified after the coins were moved.
//
// A transfer of zero value is allowed only toward a registered receiver.
func (c *BaseController) Transfer(ctx lockchain.Context, db lockchain.KVStore, src, dest lockchain.Address, amount coin.Coin) error {
	r, hasReceiver := c.receivers[string(dest)]

	switch {
	case amount.IsZero():
		if !hasReceiver {
			return errors.Wrap(errors.ErrAmount, "empty transfer to an address that is not a receiver")
		}
	default:
		if err := c.MoveCoins(db, src, dest, amount); err != nil {
			return err
		}
	}

	if hasReceiver {
		if err := r.Receive(ctx, db, src, amount); err != nil {
			return errors.Wrap(err, "receiver")
		}
	}
	return nil
}

// Approve sets the amount the spender is allowed to transfer from the owner
// wallet. Any previous allowance of the same currency is overwritten. Zero
// amount removes the allowance.
func (c *BaseController) Approve(db lockchain.KVStore, owner, spender lockchain.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative allowance")
	}
	if owner.Equals(spender) {
		return errors.Wrap(errors.ErrInput, "owner cannot approve itself")
	}

	a, err := c.allowance(db, owner, spender)
	if err != nil {
		return err
	}
	current := a.Amount.Get(amount.Ticker)
	if a.Amount, err = a.Amount.Subtract(current); err != nil {
		return errors.Wrap(err, "reset allowance")
	}
	if a.Amount, err = a.Amount.Add(amount); err != nil {
		return errors.Wrap(err, "set allowance")
	}
	return c.saveAllowance(db, owner, spender, a)
}

// Allowance returns the amount of given currency that the spender can
// transfer from the owner wallet.
func (c *BaseController) Allowance(db lockchain.ReadOnlyKVStore, owner, spender lockchain.Address, ticker string) (coin.Coin, error) {
	a, err := c.allowance(db, owner, spender)
	if err != nil {
		return coin.Coin{}, err
	}
	return a.Amount.Get(ticker), nil
}

func (c *BaseController) allowance(db lockchain.ReadOnlyKVStore, owner, spender lockchain.Address) (*Allowance, error) {
	var a Allowance
	switch err := c.allowances.One(db, allowanceKey(owner, spender), &a); {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		return &Allowance{}, nil
	default:
		return nil, errors.Wrap(err, "allowance")
	}
}

func (c *BaseController) saveAllowance(db lockchain.KVStore, owner, spender lockchain.Address, a *Allowance) error {
	key := allowanceKey(owner, spender)
	if a.Amount.IsEmpty() {
		switch err := c.allowances.Delete(db, key); {
		case err == nil, errors.ErrNotFound.Is(err):
			return nil
		default:
			return err
		}
	}
	return c.allowances.Put(db, key, a)
}

// TransferFrom moves coins from the owner wallet to the spender wallet.
// The transferred amount is deducted from the allowance granted by the
// owner to the spender. No receiver is notified, because the spender is
// the one pulling the coins.
func (c *BaseController) TransferFrom(ctx lockchain.Context, db lockchain.KVStore, owner, spender lockchain.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	a, err := c.allowance(db, owner, spender)
	if err != nil {
		return err
	}
	if !a.Amount.Contains(amount) {
		return errors.Wrapf(errors.ErrUnauthorized, "allowance of %s exceeded", a.Amount.Get(amount.Ticker))
	}
	if a.Amount, err = a.Amount.Subtract(amount); err != nil {
		return errors.Wrap(err, "allowance")
	}
	if err := c.saveAllowance(db, owner, spender, a); err != nil {
		return err
	}
	if err := c.MoveCoins(db, owner, spender, amount); err != nil {
		return err
	}
	lockchain.GetLogger(ctx).Debug("transfer from",
		"owner", owner, "spender", spender, "amount", amount.String())
	return nil
}

func (c *BaseController) accepts(db lockchain.ReadOnlyKVStore, amount coin.Coin) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if !conf.Accepts(amount.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "%s is not accepted", amount.Ticker)
	}
	return nil
}
