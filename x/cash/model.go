package cash

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/coin"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/orm"
)

// Wallet holds all coins owned by a single address.
type Wallet struct {
	Coins coin.Coins `json:"coins"`
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error)   { return lockchain.MarshalBinary(w) }
func (w *Wallet) Unmarshal(raw []byte) error { return lockchain.UnmarshalBinary(raw, w) }

// Validate requires that all coins are valid, positive and sorted.
func (w *Wallet) Validate() error {
	if err := w.Coins.Validate(); err != nil {
		return errors.Field("Coins", err, "invalid coins")
	}
	if !w.Coins.IsNonNegative() {
		return errors.Field("Coins", errors.ErrAmount, "negative balance")
	}
	return nil
}

// NewWalletBucket returns a bucket for storing wallets, keyed by the owner
// address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("cash", &Wallet{})
}

// Allowance declares how much of the owner coins the spender is allowed to
// transfer.
type Allowance struct {
	Amount coin.Coins `json:"amount"`
}

var _ orm.Model = (*Allowance)(nil)

func (a *Allowance) Marshal() ([]byte, error)   { return lockchain.MarshalBinary(a) }
func (a *Allowance) Unmarshal(raw []byte) error { return lockchain.UnmarshalBinary(raw, a) }

// Validate requires all approved amounts to be valid and positive.
func (a *Allowance) Validate() error {
	if err := a.Amount.Validate(); err != nil {
		return errors.Field("Amount", err, "invalid amount")
	}
	if !a.Amount.IsNonNegative() {
		return errors.Field("Amount", errors.ErrAmount, "negative allowance")
	}
	return nil
}

// NewAllowanceBucket returns a bucket for storing allowances. Use
// allowanceKey to build the key.
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("allowance", &Allowance{})
}

// allowanceKey returns the key an allowance of given owner and spender pair
// is stored under. Both addresses have a fixed length so concatenation is
// unambiguous.
func allowanceKey(owner, spender lockchain.Address) []byte {
	key := make([]byte, 0, len(owner)+len(spender))
	key = append(key, owner...)
	return append(key, spender...)
}
