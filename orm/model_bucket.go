package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	lockchain.Persistent
	Validate() error
}

// ModelBucket operates on Models of a single type, stored under a common
// key prefix.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db lockchain.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists,
	// ErrNotFound otherwise.
	Has(db lockchain.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. Model is validated first.
	Put(db lockchain.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db lockchain.KVStore, key []byte) error
}

// NewModelBucket returns a ModelBucket instance that stores entities of the
// same type as given model.
func NewModelBucket(name string, m Model) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket name: " + name)
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	return &modelBucket{
		prefix: []byte(name + ":"),
		model:  tp,
	}
}

type modelBucket struct {
	prefix []byte
	model  reflect.Type
}

func (mb *modelBucket) key(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

func (mb *modelBucket) One(db lockchain.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", mb.model, dest)
	}
	raw, err := db.Get(mb.key(key))
	if err != nil {
		return errors.Wrap(err, "database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

func (mb *modelBucket) Has(db lockchain.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.key(key))
	if err != nil {
		return errors.Wrap(err, "database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) Put(db lockchain.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.model)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	// Zero value models serialize to nothing, but the presence of the
	// key must still be recorded.
	if raw == nil {
		raw = []byte{}
	}
	if err := db.Set(mb.key(key), raw); err != nil {
		return errors.Wrap(err, "database")
	}
	return nil
}

func (mb *modelBucket) Delete(db lockchain.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	if err := db.Delete(mb.key(key)); err != nil {
		return errors.Wrap(err, "database")
	}
	return nil
}

var _ ModelBucket = (*modelBucket)(nil)
