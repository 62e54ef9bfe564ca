package lockup

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/coin"
	"github.com/iov-one/lockchain/errors"
)

// ConfigureMsg sets the bonus strategy. Admin signature is required.
type ConfigureMsg struct {
	Rates      []uint32    `json:"rates"`
	Boundaries []coin.Coin `json:"boundaries"`
}

var _ lockchain.Msg = (*ConfigureMsg)(nil)

func (m *ConfigureMsg) Marshal() ([]byte, error)   { return lockchain.MarshalBinary(m) }
func (m *ConfigureMsg) Unmarshal(raw []byte) error { return lockchain.UnmarshalBinary(raw, m) }

func (ConfigureMsg) Path() string {
	return "lockup/configure"
}

func (m *ConfigureMsg) Validate() error {
	s := Strategy{Rates: m.Rates, Boundaries: m.Boundaries}
	return s.Validate()
}

// OpenMsg opens the deposit window. Admin signature is required.
type OpenMsg struct{}

var _ lockchain.Msg = (*OpenMsg)(nil)

func (m *OpenMsg) Marshal() ([]byte, error)   { return lockchain.MarshalBinary(m) }
func (m *OpenMsg) Unmarshal(raw []byte) error { return lockchain.UnmarshalBinary(raw, m) }

func (OpenMsg) Path() string {
	return "lockup/open"
}

func (m *OpenMsg) Validate() error {
	return nil
}

// DepositMsg deposits the amount the depositor approved to the custody
// address.
type DepositMsg struct {
	// Depositor defaults to the main signer when not set.
	Depositor lockchain.Address `json:"depositor"`
	Tier      DurationTier      `json:"tier"`
}

var _ lockchain.Msg = (*DepositMsg)(nil)

func (m *DepositMsg) Marshal() ([]byte, error)   { return lockchain.MarshalBinary(m) }
func (m *DepositMsg) Unmarshal(raw []byte) error { return lockchain.UnmarshalBinary(raw, m) }

func (DepositMsg) Path() string {
	return "lockup/deposit"
}

func (m *DepositMsg) Validate() error {
	var errs error
	if len(m.Depositor) != 0 {
		errs = errors.AppendField(errs, "Depositor", m.Depositor.Validate())
	}
	errs = errors.AppendField(errs, "Tier", m.Tier.Validate())
	return errs
}

// WithdrawMsg releases the deposit.
type WithdrawMsg struct {
	// Depositor defaults to the main signer when not set.
	Depositor lockchain.Address `json:"depositor"`
}

var _ lockchain.Msg = (*WithdrawMsg)(nil)

func (m *WithdrawMsg) Marshal() ([]byte, error)   { return lockchain.MarshalBinary(m) }
func (m *WithdrawMsg) Unmarshal(raw []byte) error { return lockchain.UnmarshalBinary(raw, m) }

func (WithdrawMsg) Path() string {
	return "lockup/withdraw"
}

func (m *WithdrawMsg) Validate() error {
	if len(m.Depositor) == 0 {
		return nil
	}
	return errors.Field("Depositor", m.Depositor.Validate(), "invalid address")
}
