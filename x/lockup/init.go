package lockup

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/gconf"
)

// Initializer fulfils the Initializer interface to load the configuration
// from the genesis file.
type Initializer struct{}

var _ lockchain.Initializer = Initializer{}

// FromGenesis stores the extension configuration. Without a configuration
// the extension is disabled and all operations fail.
func (Initializer) FromGenesis(opts lockchain.Options, db lockchain.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, confPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "cannot initialize gconf based configuration")
	}
}
