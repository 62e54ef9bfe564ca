package lockup

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/coin"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/orm"
)

// Record is the deposit of a single address. It is created once and
// becomes terminal after withdrawal.
type Record struct {
	// Principal is the deposited amount, after capping.
	Principal coin.Coin          `json:"principal"`
	Tier      DurationTier       `json:"tier"`
	LockStart lockchain.UnixTime `json:"lock_start"`
	LockEnd   lockchain.UnixTime `json:"lock_end"`
	// BonusRate is expressed in RateScale units.
	BonusRate     uint32    `json:"bonus_rate"`
	BonusExpected coin.Coin `json:"bonus_expected"`
	// BonusReleased is set when the withdrawal paid the bonus.
	BonusReleased  bool               `json:"bonus_released"`
	DepositTime    lockchain.UnixTime `json:"deposit_time"`
	WithdrawalTime lockchain.UnixTime `json:"withdrawal_time"`
}

var _ orm.Model = (*Record)(nil)

func (r *Record) Marshal() ([]byte, error)   { return lockchain.MarshalBinary(r) }
func (r *Record) Unmarshal(raw []byte) error { return lockchain.UnmarshalBinary(raw, r) }

func (r *Record) Validate() error {
	var errs error
	if err := r.Principal.Validate(); err != nil {
		errs = errors.AppendField(errs, "Principal", err)
	} else if !r.Principal.IsPositive() {
		errs = errors.AppendField(errs, "Principal", errors.Wrap(errors.ErrAmount, "must be greater than zero"))
	}
	errs = errors.AppendField(errs, "Tier", r.Tier.Validate())
	errs = errors.AppendField(errs, "LockStart", r.LockStart.Validate())
	if r.LockEnd <= r.LockStart {
		errs = errors.AppendField(errs, "LockEnd", errors.Wrap(errors.ErrState, "must be after lock start"))
	}
	if err := r.BonusExpected.Validate(); err != nil {
		errs = errors.AppendField(errs, "BonusExpected", err)
	} else if !r.BonusExpected.IsNonNegative() {
		errs = errors.AppendField(errs, "BonusExpected", errors.Wrap(errors.ErrAmount, "negative"))
	} else if !r.BonusExpected.SameType(r.Principal) {
		errs = errors.AppendField(errs, "BonusExpected", errors.Wrap(errors.ErrCurrency, "principal currency expected"))
	}
	errs = errors.AppendField(errs, "DepositTime", r.DepositTime.Validate())
	errs = errors.AppendField(errs, "WithdrawalTime", r.WithdrawalTime.Validate())
	if r.BonusReleased && r.WithdrawalTime.IsZero() {
		errs = errors.AppendField(errs, "BonusReleased", errors.Wrap(errors.ErrState, "bonus released before withdrawal"))
	}
	return errs
}

// IsWithdrawn returns true if the deposit was withdrawn.
func (r *Record) IsWithdrawn() bool {
	return !r.WithdrawalTime.IsZero()
}

// NewRecordBucket returns a bucket for storing deposit records, keyed by
// the depositor address.
func NewRecordBucket() orm.ModelBucket {
	return orm.NewModelBucket("lockrec", &Record{})
}

// Window is the deposit window singleton. It is stored only once opened
// and carries a copy of the strategy frozen at that moment.
type Window struct {
	StartedAt lockchain.UnixTime `json:"started_at"`
	Strategy  Strategy           `json:"strategy"`
}

var _ orm.Model = (*Window)(nil)

func (w *Window) Marshal() ([]byte, error)   { return lockchain.MarshalBinary(w) }
func (w *Window) Unmarshal(raw []byte) error { return lockchain.UnmarshalBinary(raw, w) }

func (w *Window) Validate() error {
	var errs error
	if w.StartedAt.IsZero() {
		errs = errors.AppendField(errs, "StartedAt", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "StartedAt", w.StartedAt.Validate())
	errs = errors.AppendField(errs, "Strategy", w.Strategy.Validate())
	return errs
}

// NewWindowBucket returns a bucket for the deposit window singleton.
func NewWindowBucket() orm.ModelBucket {
	return orm.NewModelBucket("lockwin", &Window{})
}

// NewStrategyBucket returns a bucket for the configured strategy singleton.
func NewStrategyBucket() orm.ModelBucket {
	return orm.NewModelBucket("lockstrat", &Strategy{})
}

// singletonKey is used by all single instance models.
var singletonKey = []byte("current")
