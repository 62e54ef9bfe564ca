package store

import "github.com/iov-one/lockchain"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = lockchain.ReadOnlyKVStore
	SetDeleter       = lockchain.SetDeleter
	KVStore          = lockchain.KVStore
	Batch            = lockchain.Batch
	Iterator         = lockchain.Iterator
	CacheableKVStore = lockchain.CacheableKVStore
	KVCacheWrap      = lockchain.KVCacheWrap
)

// Model groups together key and value to return
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}
