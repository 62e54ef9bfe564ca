package coin

import (
	"sort"

	"github.com/iov-one/lockchain/errors"
)

// Coins is a set of coins of different currencies. A normalized set contains
// at most one coin per currency, none of them zero, sorted by ticker.
type Coins []Coin

// CombineCoins creates a normalized set from given coins. Coins of the same
// currency are added together.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Get returns the coin of given currency. A zero value coin is returned if
// the set does not contain that currency.
func (cs Coins) Get(ticker string) Coin {
	if i, ok := cs.find(ticker); ok {
		return cs[i]
	}
	return Zero(ticker)
}

// Add returns a new set with given coin added. The set is not modified.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}
	if !IsCC(c.Ticker) {
		return nil, errors.Wrapf(errors.ErrCurrency, "invalid currency: %q", c.Ticker)
	}

	res := cs.Clone()
	i, ok := res.find(c.Ticker)
	if !ok {
		res = append(res, c)
		sort.Slice(res, func(a, b int) bool { return res[a].Ticker < res[b].Ticker })
		return res, nil
	}

	sum, err := res[i].Add(c)
	if err != nil {
		return nil, err
	}
	if sum.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = sum
	return res, nil
}

// Subtract returns a new set with given coin subtracted.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Contains returns true if the set holds at least given amount of the coin
// currency.
func (cs Coins) Contains(c Coin) bool {
	return cs.Get(c.Ticker).IsGTE(c)
}

// Clone returns an independent copy of the set.
func (cs Coins) Clone() Coins {
	if len(cs) == 0 {
		return nil
	}
	res := make(Coins, len(cs))
	copy(res, cs)
	return res
}

// IsEmpty returns true if no value is held.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// IsNonNegative returns true if no coin holds a negative value.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsNonNegative() {
			return false
		}
	}
	return true
}

// Validate returns an error if the set is not normalized or any of the
// coins is invalid.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrapf(errors.ErrCurrency, "zero %s coin", c.Ticker)
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return errors.Wrap(errors.ErrCurrency, "not sorted or duplicated")
		}
	}
	return nil
}

func (cs Coins) find(ticker string) (int, bool) {
	for i, c := range cs {
		if c.Ticker == ticker {
			return i, true
		}
	}
	return 0, false
}
