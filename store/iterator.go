package store

import (
	"bytes"

	"github.com/iov-one/lockchain/errors"
)

// cacheIterator merges cached entries with the results of the parent
// iterator. Cached entries take precedence and deleted entries hide the
// parent's value.
type cacheIterator struct {
	items []keyer
	idx   int

	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	parentHead bool
	parentDone bool

	reverse bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []keyer, parent Iterator, reverse bool) *cacheIterator {
	return &cacheIterator{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
}

func (it *cacheIterator) Next() (key, value []byte, err error) {
	for {
		if err := it.loadParent(); err != nil {
			return nil, nil, err
		}

		hasOwn := it.idx < len(it.items)
		switch {
		case !hasOwn && it.parentDone:
			return nil, nil, errors.ErrIteratorDone
		case !hasOwn:
			return it.popParent()
		case !it.parentDone:
			cmp := bytes.Compare(it.items[it.idx].Key(), it.parentKey)
			if it.reverse {
				cmp = -cmp
			}
			if cmp > 0 {
				return it.popParent()
			}
			if cmp == 0 {
				// Cached value overwrites the parent one.
				it.parentHead = false
			}
		}

		item := it.items[it.idx]
		it.idx++
		if s, ok := item.(setItem); ok {
			return s.Key(), s.value, nil
		}
		// Deleted item, keep looking.
	}
}

// loadParent ensures that the next parent element is available, unless the
// parent iterator is exhausted.
func (it *cacheIterator) loadParent() error {
	if it.parentHead || it.parentDone {
		return nil
	}
	key, value, err := it.parent.Next()
	switch {
	case err == nil:
		it.parentKey, it.parentVal, it.parentHead = key, value, true
	case errors.ErrIteratorDone.Is(err):
		it.parentDone = true
	default:
		return err
	}
	return nil
}

func (it *cacheIterator) popParent() ([]byte, []byte, error) {
	it.parentHead = false
	return it.parentKey, it.parentVal, nil
}

func (it *cacheIterator) Release() {
	it.parent.Release()
	it.items = nil
}
