package cash

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/coin"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/gconf"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. Address is
// using lockchain.Address, so hex or bech32 encoding, not base64.
type GenesisAccount struct {
	Address lockchain.Address `json:"address"`
	Coins   []coin.Coin       `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ lockchain.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it to
// the database. Configuration is optional.
func (Initializer) FromGenesis(opts lockchain.Options, db lockchain.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, confPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		// All good.
	default:
		return errors.Wrap(err, "cannot initialize gconf based configuration")
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		for _, c := range acct.Coins {
			if err := c.Validate(); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
			if err := ctrl.CoinMint(db, acct.Address, c); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
	}
	return nil
}
