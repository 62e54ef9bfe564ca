package app

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/chaintest"
	"github.com/iov-one/lockchain/chaintest/assert"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/store"
)

type initializerFunc func(lockchain.Options, lockchain.KVStore) error

func (fn initializerFunc) FromGenesis(o lockchain.Options, db lockchain.KVStore) error {
	return fn(o, db)
}

func TestApplicationLifecycle(t *testing.T) {
	db := store.MemStore()
	key := []byte("written")

	h := &chaintest.Handler{
		OnDeliver: func(ctx lockchain.Context, db lockchain.KVStore) error {
			if _, err := lockchain.BlockTime(ctx); err != nil {
				return err
			}
			return db.Set(key, []byte(lockchain.GetChainID(ctx)))
		},
	}
	router := NewRouter()
	router.Handle(&chaintest.Msg{RoutePath: "test/write"}, h)

	var initCalls int
	init := initializerFunc(func(opts lockchain.Options, db lockchain.KVStore) error {
		initCalls++
		var conf struct{ Value string }
		if err := opts.ReadOptions("test", &conf); err != nil {
			return err
		}
		return db.Set([]byte("init"), []byte(conf.Value))
	})

	a, err := NewApplication("test", db, router, ChainInitializers(init))
	assert.Nil(t, err)

	tx := &chaintest.Tx{Msg: &chaintest.Msg{RoutePath: "test/write"}}

	// Nothing can be processed before the chain is initialized.
	assert.IsErr(t, errors.ErrState, a.BeginBlock(1, time.Now()))

	gen := Genesis{
		ChainID:    "test-chain",
		AppOptions: lockchain.Options{"test": json.RawMessage(`{"Value": "ok"}`)},
	}
	assert.Nil(t, a.InitChain(gen))
	assert.Equal(t, 1, initCalls)
	assert.Equal(t, "test-chain", a.ChainID())
	assert.IsErr(t, errors.ErrState, a.InitChain(gen))

	got, err := db.Get([]byte("init"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("ok"), got)

	_, err = a.DeliverTx(tx)
	assert.IsErr(t, errors.ErrState, err)

	assert.Nil(t, a.BeginBlock(1, time.Now()))
	assert.IsErr(t, errors.ErrInput, a.BeginBlock(1, time.Now()))

	// Check must not modify the state.
	_, err = a.CheckTx(tx)
	assert.Nil(t, err)
	has, err := db.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	_, err = a.DeliverTx(tx)
	assert.Nil(t, err)
	got, err = db.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, []byte("test-chain"), got)

	// Reopening the store must restore the chain ID.
	reopened, err := NewApplication("test", db, router, nil)
	assert.Nil(t, err)
	assert.Equal(t, "test-chain", reopened.ChainID())
}

func TestApplicationDeliverRollback(t *testing.T) {
	db := store.MemStore()
	h := &chaintest.Handler{
		OnDeliver: func(ctx lockchain.Context, db lockchain.KVStore) error {
			return db.Set([]byte("partial"), []byte("x"))
		},
		DeliverErr: errors.Wrap(errors.ErrAmount, "fail after write"),
	}
	router := NewRouter()
	router.Handle(&chaintest.Msg{RoutePath: "test/fail"}, h)

	a, err := NewApplication("test", db, router, nil)
	assert.Nil(t, err)
	assert.Nil(t, a.InitChain(Genesis{ChainID: "test-chain"}))
	assert.Nil(t, a.BeginBlock(1, time.Now()))

	_, err = a.DeliverTx(&chaintest.Tx{Msg: &chaintest.Msg{RoutePath: "test/fail"}})
	assert.IsErr(t, errors.ErrAmount, err)

	has, err := db.Has([]byte("partial"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
}

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "genesis.json")
	content := `{"chain_id": "test-chain", "app_state": {"conf": {"lockup": {}}}}`
	assert.Nil(t, ioutil.WriteFile(path, []byte(content), 0600))

	gen, err := LoadGenesis(path)
	assert.Nil(t, err)
	assert.Equal(t, "test-chain", gen.ChainID)
	if _, ok := gen.AppOptions["conf"]; !ok {
		t.Fatal("app options not loaded")
	}

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.IsErr(t, errors.ErrInput, err)
}

func TestCommitWithoutVersioning(t *testing.T) {
	a, err := NewApplication("test", store.MemStore(), NewRouter(), nil)
	assert.Nil(t, err)
	id, err := a.Commit()
	assert.Nil(t, err)
	assert.Equal(t, lockchain.CommitID{}, id)
}
