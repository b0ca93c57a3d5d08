package kvstore

import (
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore is the production Store, backing the flat keyspace with an
// embedded Badger LSM database: a single-file-tree ordered KV engine with
// the same role that an embedded library like unqlite plays for the
// original C implementation this core is modeled on.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (creating if absent) a Badger database at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

// Store implements Store.
func (b *BadgerStore) Store(key, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Fetch implements Store.
func (b *BadgerStore) Fetch(key []byte) ([]byte, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			out = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete implements Store.
func (b *BadgerStore) Delete(key []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Close implements Store.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}
