package lockup

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/coin"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/gconf"
)

const confPkg = "lockup"

// Configuration of the lockup extension.
type Configuration struct {
	// Admin is allowed to configure the strategy and open the window.
	Admin lockchain.Address `json:"admin"`
	// Ticker is the currency that can be deposited.
	Ticker string `json:"ticker"`
	// BonusPool is the address bonuses are paid from. It must approve the
	// custody address to spend its funds.
	BonusPool lockchain.Address `json:"bonus_pool"`
	// LockPeriods declares the lock duration of every tier, from the
	// shortest to the longest.
	LockPeriods []lockchain.UnixDuration `json:"lock_periods"`
	// DepositPeriod is how long the window accepts deposits after it was
	// opened. Zero means no limit.
	DepositPeriod lockchain.UnixDuration `json:"deposit_period"`
	// DefaultStrategy is frozen when the window is opened without a
	// strategy being configured first. Optional.
	DefaultStrategy Strategy `json:"default_strategy"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error)   { return lockchain.MarshalBinary(c) }
func (c *Configuration) Unmarshal(raw []byte) error { return lockchain.UnmarshalBinary(raw, c) }

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Admin", c.Admin.Validate())
	if !coin.IsCC(c.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", c.Ticker))
	}
	errs = errors.AppendField(errs, "BonusPool", c.BonusPool.Validate())
	if len(c.LockPeriods) != NumTiers {
		errs = errors.AppendField(errs, "LockPeriods",
			errors.Wrapf(ErrInvalidConfiguration, "want %d periods, got %d", NumTiers, len(c.LockPeriods)))
	} else {
		for i, p := range c.LockPeriods {
			if p <= 0 {
				errs = errors.AppendField(errs, "LockPeriods", errors.Wrap(ErrInvalidConfiguration, "must be positive"))
			} else if i > 0 && p <= c.LockPeriods[i-1] {
				errs = errors.AppendField(errs, "LockPeriods", errors.Wrap(ErrInvalidConfiguration, "must be increasing"))
			}
		}
	}
	if c.DepositPeriod < 0 {
		errs = errors.AppendField(errs, "DepositPeriod", errors.Wrap(ErrInvalidConfiguration, "negative"))
	}
	if !c.DefaultStrategy.IsZero() {
		errs = errors.AppendField(errs, "DefaultStrategy", c.DefaultStrategy.Validate())
		if t := c.DefaultStrategy.Ticker(); t != "" && t != c.Ticker {
			errs = errors.AppendField(errs, "DefaultStrategy",
				errors.Wrapf(ErrInvalidConfiguration, "boundaries in %s, deposits in %s", t, c.Ticker))
		}
	}
	return errs
}

// LockPeriod returns the lock duration of given tier.
func (c *Configuration) LockPeriod(tier DurationTier) (lockchain.UnixDuration, error) {
	if err := tier.Validate(); err != nil {
		return 0, err
	}
	if int(tier) >= len(c.LockPeriods) {
		return 0, errors.Wrapf(ErrInvalidConfiguration, "no lock period for %s tier", tier)
	}
	return c.LockPeriods[tier], nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
