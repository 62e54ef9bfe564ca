package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/errors"
)

// Genesis file format.
type Genesis struct {
	ChainID    string            `json:"chain_id"`
	AppOptions lockchain.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...lockchain.Initializer) lockchain.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []lockchain.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts lockchain.Options, kv lockchain.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

const chainIDKey = "_internal:chainID"

// loadChainID returns the chain id stored if any
func loadChainID(kv lockchain.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv lockchain.KVStore, chainID string) error {
	if !lockchain.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id: %q", chainID)
	}
	k := []byte(chainIDKey)
	switch has, err := kv.Has(k); {
	case err != nil:
		return errors.Wrap(err, "chain id")
	case has:
		return errors.Wrap(errors.ErrState, "chain id already set")
	}
	return kv.Set(k, []byte(chainID))
}
