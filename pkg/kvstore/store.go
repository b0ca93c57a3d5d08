// Package kvstore is the KV adapter: the single chokepoint where the core
// speaks to the underlying ordered key-value store. It exposes typed
// store/fetch/delete primitives and translates store-specific status codes
// into the core's error taxonomy; nothing above this package ever sees a
// store-specific error type.
package kvstore

import (
	"errors"

	"github.com/nodalfs/nodalfs/pkg/fserr"
)

// ErrNotFound is the sentinel a Store implementation returns from Fetch
// when the key does not exist. The adapter maps it to fserr.NotFound.
var ErrNotFound = errors.New("kvstore: key not found")

// ErrNoMem is the sentinel a Store implementation returns when it cannot
// allocate space to service a request. The adapter maps it to fserr.NoMem.
var ErrNoMem = errors.New("kvstore: out of memory")

// Store is the black-box ordered key-value store the core depends on.
// Keys and values are arbitrary byte strings; Store has create-or-replace
// semantics. Implementations live in this package (Badger-backed, for
// production; in-memory, for tests) and are otherwise out of the core's
// scope: mount lifecycle, compaction, and durability guarantees belong to
// the store, not to the filesystem logic built on top of it.
type Store interface {
	Store(key, value []byte) error
	Fetch(key []byte) ([]byte, error)
	Delete(key []byte) error
	Close() error
}

// Adapter wraps a Store and translates its errors into the core's error
// taxonomy, per §4.1: not-found -> ENOENT, I/O error -> EIO,
// out-of-memory -> ENOMEM, any other store/delete failure -> EIO.
type Adapter struct {
	store Store
}

// NewAdapter wraps store in an Adapter.
func NewAdapter(store Store) *Adapter {
	return &Adapter{store: store}
}

// Put stores value under key, translating any failure to a core error.
func (a *Adapter) Put(key, value []byte) error {
	if err := a.store.Store(key, value); err != nil {
		return translateWriteErr(err)
	}
	return nil
}

// Get fetches the value stored under key, translating any failure to a
// core error (fserr.NotFound when the key is absent).
func (a *Adapter) Get(key []byte) ([]byte, error) {
	val, err := a.store.Fetch(key)
	if err != nil {
		return nil, translateReadErr(err)
	}
	return val, nil
}

// Remove deletes key, translating any failure to a core error.
func (a *Adapter) Remove(key []byte) error {
	if err := a.store.Delete(key); err != nil {
		return translateWriteErr(err)
	}
	return nil
}

// Close releases the underlying store.
func (a *Adapter) Close() error {
	return a.store.Close()
}

func translateReadErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fserr.New(fserr.NotFound, "key not found", "")
	case errors.Is(err, ErrNoMem):
		return fserr.New(fserr.NoMem, "out of memory", "")
	default:
		return fserr.New(fserr.IOError, "kv fetch failed: "+err.Error(), "")
	}
}

func translateWriteErr(err error) error {
	if errors.Is(err, ErrNoMem) {
		return fserr.New(fserr.NoMem, "out of memory", "")
	}
	return fserr.New(fserr.IOError, "kv operation failed: "+err.Error(), "")
}
