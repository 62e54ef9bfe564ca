/*
Package iavl provides a persistent store, backed by a merkle tree saved in
a goleveldb database. Every commit creates a new version of the tree.
*/
package iavl

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

const cacheSize = 10000

// CommitStore manages a iavl committed state. All writes go to the working
// tree and are persisted by Commit.
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ lockchain.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore opens (or creates) a goleveldb database with given name
// in the directory and loads the latest committed version.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s: %s", name, err)
	}
	s := &CommitStore{
		tree: iavl.NewMutableTree(db, cacheSize),
		db:   db,
	}
	if err := s.LoadLatestVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewMemCommitStore returns a store that keeps all versions in memory.
func NewMemCommitStore() *CommitStore {
	db := dbm.NewMemDB()
	return &CommitStore{
		tree: iavl.NewMutableTree(db, cacheSize),
		db:   db,
	}
}

// Close releases the database.
func (s *CommitStore) Close() {
	s.db.Close()
}

// Commit the next version to disk, and returns info
func (s *CommitStore) Commit() (lockchain.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return lockchain.CommitID{}, errors.Wrapf(errors.ErrDatabase, "save version: %s", err)
	}
	return lockchain.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// Uncommitted changes are dropped.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.LoadVersion(0); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "load version: %s", err)
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() lockchain.CommitID {
	return lockchain.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.Get(key)
	return val, nil
}

// Has checks if a key exists. Panics on nil key.
func (s *CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Set adds a new value to the working tree.
func (s *CommitStore) Set(key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	s.tree.Set(key, value)
	return nil
}

// Delete removes from the working tree.
func (s *CommitStore) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that applies all operations to the working tree.
func (s *CommitStore) NewBatch() lockchain.Batch {
	return store.NewNonAtomicBatch(s)
}

// CacheWrap wraps the working tree with a btree cache.
func (s *CommitStore) CacheWrap() lockchain.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *CommitStore) Iterator(start, end []byte) (lockchain.Iterator, error) {
	return s.iterate(start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (s *CommitStore) ReverseIterator(start, end []byte) (lockchain.Iterator, error) {
	return s.iterate(start, end, false), nil
}

func (s *CommitStore) iterate(start, end []byte, ascending bool) lockchain.Iterator {
	var res []store.Model
	s.tree.IterateRange(start, end, ascending, func(key []byte, value []byte) bool {
		res = append(res, store.Pair(key, value))
		return false
	})
	return store.NewSliceIterator(res)
}
