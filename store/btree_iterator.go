package store

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	"github.com/iov-one/bazaar/errors"
)

// btreeIter walks over the btree items within a range, feeding them through
// a channel so the walk can be aborted early.
type btreeIter struct {
	data    btree.Item
	hasMore bool
	read    <-chan btree.Item
	stop    chan<- struct{}
	once    sync.Once
}

func ascendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	// ensure we never block when we call close()
	stop := make(chan struct{}, 1)
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			close(read)
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Ascend(insert)
		} else if start == nil { // end != nil
			bt.AscendLessThan(bkey{end}, insert)
		} else if end == nil { // start != nil
			bt.AscendGreaterOrEqual(bkey{start}, insert)
		} else { // both != nil
			bt.AscendRange(bkey{start}, bkey{end}, insert)
		}
		close(read)
	}()

	iter.next()
	return iter
}

func descendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	// ensure we never block when we call close()
	stop := make(chan struct{}, 1)
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			close(read)
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Descend(insert)
		} else if start == nil { // end != nil
			bt.DescendLessOrEqual(bkeyLess{end}, insert)
		} else if end == nil { // start != nil
			bt.DescendGreaterThan(bkeyLess{start}, insert)
		} else { // both != nil
			bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
		}
		close(read)
	}()

	iter.next()
	return iter
}

func (b *btreeIter) wrap(parent Iterator, reverse bool) *itemIter {
	return &itemIter{
		wrap:    b,
		parent:  parent,
		reverse: reverse,
	}
}

func (b *btreeIter) next() {
	b.data, b.hasMore = <-b.read
}

func (b *btreeIter) close() {
	b.once.Do(func() {
		b.stop <- struct{}{}
	})
}

// get requires this is valid, gets what we are pointing at
func (b *btreeIter) get() keyer {
	return b.data.(keyer)
}

func (b *btreeIter) valid() bool {
	return b.hasMore
}

// itemIter combines the uncommitted writes held in the btree with the
// contents of the parent store. Deleted entries shadow parent entries,
// set entries overwrite them.
type itemIter struct {
	wrap    *btreeIter
	parent  Iterator
	reverse bool

	// one item lookahead into the parent iterator
	parentKey   []byte
	parentValue []byte
	parentDone  bool
	parentRead  bool
}

var _ Iterator = (*itemIter)(nil)

// Next returns the next key/value pair of the merged iteration, or
// ErrIteratorDone when both sources are exhausted.
func (i *itemIter) Next() (key, value []byte, err error) {
	for {
		if err := i.loadParent(); err != nil {
			return nil, nil, err
		}

		wrapValid := i.wrap.valid()

		switch {
		case !wrapValid && i.parentDone:
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
		case !wrapValid:
			return i.takeParent()
		case i.parentDone:
			key, value, deleted := i.takeWrap()
			if deleted {
				continue
			}
			return key, value, nil
		}

		cmp := bytes.Compare(i.parentKey, i.wrap.get().Key())
		if i.reverse {
			cmp = -cmp
		}
		switch {
		case cmp < 0:
			// parent goes first
			return i.takeParent()
		case cmp > 0:
			// our write goes first
			key, value, deleted := i.takeWrap()
			if deleted {
				continue
			}
			return key, value, nil
		default:
			// same key on both sides: the cached write wins, the
			// parent entry is consumed silently
			i.parentRead = false
			key, value, deleted := i.takeWrap()
			if deleted {
				continue
			}
			return key, value, nil
		}
	}
}

// Release frees both underlying iterators.
func (i *itemIter) Release() {
	i.parent.Release()
	i.wrap.close()
}

// loadParent ensures the one item lookahead into the parent is filled.
func (i *itemIter) loadParent() error {
	if i.parentRead || i.parentDone {
		return nil
	}
	key, value, err := i.parent.Next()
	switch {
	case err == nil:
		i.parentKey, i.parentValue = key, value
		i.parentRead = true
	case errors.ErrIteratorDone.Is(err):
		i.parentDone = true
	default:
		return err
	}
	return nil
}

func (i *itemIter) takeParent() (key, value []byte, err error) {
	i.parentRead = false
	return i.parentKey, i.parentValue, nil
}

func (i *itemIter) takeWrap() (key, value []byte, deleted bool) {
	item := i.wrap.get()
	i.wrap.next()
	if set, ok := item.(setItem); ok {
		return set.Key(), set.value, false
	}
	return nil, nil, true
}
