// Package memory provides an in-memory catalog.Store implementation.
//
// Suitable for tests and ephemeral deployments where catalog persistence
// is not required across restarts.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nilium/snowball/pkg/catalog"
)

// Store is an in-memory implementation of catalog.Store.
//
// All operations are protected by a read-write mutex, making the store
// safe for concurrent access from multiple goroutines.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*catalog.Entry
	closed  bool
}

// New creates a new, empty in-memory catalog store.
func New() *Store {
	return &Store{
		entries: make(map[string]*catalog.Entry),
	}
}

// Put implements catalog.Store.
func (s *Store) Put(ctx context.Context, e *catalog.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return catalog.ErrNotFound
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	stored := *e
	s.entries[e.ID] = &stored
	return nil
}

// Get implements catalog.Store.
func (s *Store) Get(ctx context.Context, id string) (*catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}

	stored := *e
	return &stored, nil
}

// List implements catalog.Store.
func (s *Store) List(ctx context.Context) ([]*catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*catalog.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		stored := *e
		out = append(out, &stored)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete implements catalog.Store.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// Close implements catalog.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.entries = nil
	return nil
}

var _ catalog.Store = (*Store)(nil)
