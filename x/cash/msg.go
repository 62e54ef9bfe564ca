package cash

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/coin"
	"github.com/iov-one/lockchain/errors"
)

const maxMemoSize int = 128

// SendMsg requests a transfer of coins from the source to the destination
// wallet.
type SendMsg struct {
	// Source defaults to the main signer when not set.
	Source      lockchain.Address `json:"source"`
	Destination lockchain.Address `json:"destination"`
	Amount      coin.Coin         `json:"amount"`
	Memo        string            `json:"memo,omitempty"`
}

var _ lockchain.Msg = (*SendMsg)(nil)

func (m *SendMsg) Marshal() ([]byte, error)   { return lockchain.MarshalBinary(m) }
func (m *SendMsg) Unmarshal(raw []byte) error { return lockchain.UnmarshalBinary(raw, m) }

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible. An empty amount is allowed,
// because such transfer is a valid notification of a receiver.
func (m *SendMsg) Validate() error {
	var errs error
	if len(m.Source) != 0 {
		errs = errors.AppendField(errs, "Source", m.Source.Validate())
	}
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if err := m.Amount.Validate(); err != nil {
		errs = errors.AppendField(errs, "Amount", err)
	} else if !m.Amount.IsNonNegative() {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "negative amount"))
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return errs
}

// ApproveMsg sets the amount the spender is allowed to transfer from the
// owner wallet.
type ApproveMsg struct {
	// Owner defaults to the main signer when not set.
	Owner   lockchain.Address `json:"owner"`
	Spender lockchain.Address `json:"spender"`
	Amount  coin.Coin         `json:"amount"`
}

var _ lockchain.Msg = (*ApproveMsg)(nil)

func (m *ApproveMsg) Marshal() ([]byte, error)   { return lockchain.MarshalBinary(m) }
func (m *ApproveMsg) Unmarshal(raw []byte) error { return lockchain.UnmarshalBinary(raw, m) }

func (ApproveMsg) Path() string {
	return "cash/approve"
}

func (m *ApproveMsg) Validate() error {
	var errs error
	if len(m.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	}
	errs = errors.AppendField(errs, "Spender", m.Spender.Validate())
	if err := m.Amount.Validate(); err != nil {
		errs = errors.AppendField(errs, "Amount", err)
	} else if !m.Amount.IsNonNegative() {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "negative amount"))
	}
	return errs
}
