package cash

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/coin"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/gconf"
)

const confPkg = "cash"

// Configuration of the cash extension.
type Configuration struct {
	// Tickers is the list of currencies that can be moved. An empty list
	// does not restrict currencies.
	Tickers []string `json:"tickers"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error)   { return lockchain.MarshalBinary(c) }
func (c *Configuration) Unmarshal(raw []byte) error { return lockchain.UnmarshalBinary(raw, c) }

func (c *Configuration) Validate() error {
	var errs error
	seen := make(map[string]struct{}, len(c.Tickers))
	for _, t := range c.Tickers {
		if !coin.IsCC(t) {
			errs = errors.AppendField(errs, "Tickers", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", t))
			continue
		}
		if _, ok := seen[t]; ok {
			errs = errors.AppendField(errs, "Tickers", errors.Wrapf(errors.ErrDuplicate, "ticker %q", t))
		}
		seen[t] = struct{}{}
	}
	return errs
}

// Accepts returns true if coins of given currency can be moved.
func (c *Configuration) Accepts(ticker string) bool {
	if len(c.Tickers) == 0 {
		return true
	}
	for _, t := range c.Tickers {
		if t == ticker {
			return true
		}
	}
	return false
}

// loadConf returns the configuration stored in the database. When the
// extension was never configured, a configuration that accepts all
// currencies is returned.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}
