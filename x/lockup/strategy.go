package lockup

import (
	"fmt"

	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/coin"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/orm"
)

// RateScale is the denominator of all bonus rates. A rate of 90 means
// 9% of the principal.
const RateScale = 1000

const (
	// NumTiers is the number of duration tiers.
	NumTiers = 3
	// NumBands is the number of amount bands.
	NumBands = 2
	// NumBoundaries is the number of amount boundaries defining the bands.
	NumBoundaries = NumBands + 1
	// NumRates is the number of rates a strategy declares.
	NumRates = NumBands * NumTiers
)

// DurationTier selects the lock period of a deposit.
type DurationTier int32

// Each tier locks a deposit for Configuration.LockPeriods[tier].
const (
	TierShort DurationTier = iota
	TierMedium
	TierLong
)

// Validate returns an error if this is not one of the declared tiers.
func (t DurationTier) Validate() error {
	if t < TierShort || t > TierLong {
		return errors.Wrapf(errors.ErrInput, "unknown duration tier %d", t)
	}
	return nil
}

func (t DurationTier) String() string {
	switch t {
	case TierShort:
		return "short"
	case TierMedium:
		return "medium"
	case TierLong:
		return "long"
	default:
		return fmt.Sprintf("tier(%d)", int32(t))
	}
}

// Strategy declares bonus rates for every amount band and duration tier.
//
// Rates are ordered by band first. Rates[0:3] apply to amounts within
// [Boundaries[0], Boundaries[1]], Rates[3:6] to amounts within
// (Boundaries[1], Boundaries[2]]. Within each band the rates are indexed by
// the duration tier.
type Strategy struct {
	Rates      []uint32    `json:"rates"`
	Boundaries []coin.Coin `json:"boundaries"`
}

var _ orm.Model = (*Strategy)(nil)

func (s *Strategy) Marshal() ([]byte, error)   { return lockchain.MarshalBinary(s) }
func (s *Strategy) Unmarshal(raw []byte) error { return lockchain.UnmarshalBinary(raw, s) }

// Validate returns ErrInvalidConfiguration if the strategy cannot be used.
func (s *Strategy) Validate() error {
	var errs error
	if len(s.Rates) != NumRates {
		errs = errors.AppendField(errs, "Rates",
			errors.Wrapf(ErrInvalidConfiguration, "want %d rates, got %d", NumRates, len(s.Rates)))
	}
	if len(s.Boundaries) != NumBoundaries {
		return errors.AppendField(errs, "Boundaries",
			errors.Wrapf(ErrInvalidConfiguration, "want %d boundaries, got %d", NumBoundaries, len(s.Boundaries)))
	}
	for i, b := range s.Boundaries {
		field := fmt.Sprintf("Boundaries.%d", i)
		if err := b.Validate(); err != nil {
			errs = errors.AppendField(errs, field, errors.Wrap(ErrInvalidConfiguration, err.Error()))
			continue
		}
		if !b.IsPositive() {
			errs = errors.AppendField(errs, field, errors.Wrap(ErrInvalidConfiguration, "must be positive"))
			continue
		}
		if i == 0 {
			continue
		}
		prev := s.Boundaries[i-1]
		if !b.SameType(prev) {
			errs = errors.AppendField(errs, field, errors.Wrap(ErrInvalidConfiguration, "currency mismatch"))
		} else if b.Compare(prev) <= 0 {
			errs = errors.AppendField(errs, field, errors.Wrap(ErrInvalidConfiguration, "must be greater than the previous boundary"))
		}
	}
	return errs
}

// Ticker returns the currency of the boundaries.
func (s *Strategy) Ticker() string {
	if len(s.Boundaries) == 0 {
		return ""
	}
	return s.Boundaries[0].Ticker
}

// IsZero returns true if nothing was declared.
func (s *Strategy) IsZero() bool {
	return len(s.Rates) == 0 && len(s.Boundaries) == 0
}

func (s *Strategy) clone() Strategy {
	return Strategy{
		Rates:      append([]uint32(nil), s.Rates...),
		Boundaries: append([]coin.Coin(nil), s.Boundaries...),
	}
}

// Table is a frozen, read-only bonus strategy. It can be obtained only from
// an open deposit window, so a rate lookup is possible only after the
// window was opened.
type Table struct {
	s Strategy
}

// Min returns the lowest amount that can be deposited.
func (t *Table) Min() coin.Coin {
	return t.s.Boundaries[0]
}

// Max returns the highest amount that can be deposited. Bigger deposits are
// capped to this value.
func (t *Table) Max() coin.Coin {
	return t.s.Boundaries[NumBoundaries-1]
}

// Ticker returns the currency of the deposits.
func (t *Table) Ticker() string {
	return t.s.Ticker()
}

// Lookup returns the bonus rate for given amount and duration tier. Zero
// is returned for an amount outside of both bands or for an unknown tier.
func (t *Table) Lookup(amount coin.Coin, tier DurationTier) uint32 {
	if tier.Validate() != nil || !amount.SameType(t.Min()) {
		return 0
	}
	low, mid, high := t.s.Boundaries[0], t.s.Boundaries[1], t.s.Boundaries[2]
	switch {
	case amount.Compare(low) >= 0 && amount.Compare(mid) <= 0:
		return t.s.Rates[int(tier)]
	case amount.Compare(mid) > 0 && amount.Compare(high) <= 0:
		return t.s.Rates[NumTiers+int(tier)]
	default:
		return 0
	}
}

// Strategy returns a copy of the frozen strategy.
func (t *Table) Strategy() Strategy {
	return t.s.clone()
}
