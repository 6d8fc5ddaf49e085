// Package badger provides a BadgerDB-backed catalog.Store implementation.
//
// Entries are stored as JSON values under an "e:" key prefix, following
// the prefixed-key namespace convention the teacher's metadata store uses
// for its own BadgerDB-backed collections.
package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/nilium/snowball/pkg/catalog"
)

const prefixEntry = "e:"

func keyEntry(id string) []byte {
	return []byte(prefixEntry + id)
}

// Store is a BadgerDB-backed implementation of catalog.Store.
type Store struct {
	db     *badgerdb.DB
	ownsDB bool
}

// Open opens (creating if necessary) a BadgerDB database at dir and
// returns a Store backed by it. The returned Store owns the database and
// closes it when Close is called.
func Open(dir string) (*Store, error) {
	opts := badgerdb.DefaultOptions(dir).WithLogger(nil)
	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	return &Store{db: db, ownsDB: true}, nil
}

// NewFromDB wraps an already-open *badgerdb.DB. The caller remains
// responsible for closing db; Store.Close becomes a no-op.
func NewFromDB(db *badgerdb.DB) *Store {
	return &Store{db: db}
}

// Put implements catalog.Store.
func (s *Store) Put(ctx context.Context, e *catalog.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode catalog entry: %w", err)
	}

	return s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(keyEntry(e.ID), data)
	})
}

// Get implements catalog.Store.
func (s *Store) Get(ctx context.Context, id string) (*catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var e catalog.Entry
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(keyEntry(id))
		if err == badgerdb.ErrKeyNotFound {
			return catalog.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List implements catalog.Store.
func (s *Store) List(ctx context.Context) ([]*catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []*catalog.Entry
	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = []byte(prefixEntry)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(opts.Prefix); it.Next() {
			var e catalog.Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			out = append(out, &e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete implements catalog.Store.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badgerdb.Txn) error {
		err := txn.Delete(keyEntry(id))
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

// Close implements catalog.Store.
func (s *Store) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

var _ catalog.Store = (*Store)(nil)
