package store

import (
	"github.com/recpm-network/recpm"
)

// Interfaces are defined on the root package so extension code never imports
// store directly. They are aliased here for the implementations.
type (
	ReadOnlyKVStore  = recpm.ReadOnlyKVStore
	KVStore          = recpm.KVStore
	CacheableKVStore = recpm.CacheableKVStore
	KVCacheWrap      = recpm.KVCacheWrap
)

// EmptyKVStore never holds any data and silently swallows writes. It backs
// the bottom of a MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (e EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

func (e EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

func (e EmptyKVStore) Set(key, value []byte) error { return nil }

func (e EmptyKVStore) Delete(key []byte) error { return nil }
