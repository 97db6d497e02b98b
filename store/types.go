package store

import (
	"github.com/iov-one/bazaar"
)

// Type aliases so that store implementations do not need to import the root
// package under a different name all over.
type (
	ReadOnlyKVStore  = bazaar.ReadOnlyKVStore
	KVStore          = bazaar.KVStore
	CacheableKVStore = bazaar.CacheableKVStore
	KVCacheWrap      = bazaar.KVCacheWrap
	Batch            = bazaar.Batch
	CommitKVStore    = bazaar.CommitKVStore
	CommitID         = bazaar.CommitID
	Iterator         = bazaar.Iterator
	Model            = bazaar.Model
)

// SetDeleter is a minimal interface for writing, the write-side counterpart
// of ReadOnlyKVStore.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}
