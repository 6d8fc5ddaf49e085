// Package catalog indexes written .snowball files so a long-running server
// can answer "what do I have" without re-parsing every file's root header.
//
// This is supplemental to the wire format itself: nothing in spec.md
// requires a catalog, but a blobstore full of opaque files is only useful
// if something remembers where they live and what's in them.
package catalog

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the requested catalog entry does not exist.
var ErrNotFound = errors.New("catalog: entry not found")

// Entry summarizes one written .snowball file without requiring a caller
// to open and parse it.
type Entry struct {
	// ID uniquely identifies the entry. Generated at Put time if empty.
	ID string

	// Location is the blobstore-specific key or path for the underlying
	// bytes (a local filesystem path, an S3 object key, ...).
	Location string

	// Size is the total encoded size in bytes (frame.Root.Size).
	Size uint32

	// CompoundCount is the number of distinct compounds the file holds
	// (frame.Root.NumCompounds).
	CompoundCount uint32

	// CreatedAt is when the entry was cataloged.
	CreatedAt time.Time
}

// Store persists and retrieves catalog entries.
type Store interface {
	// Put inserts or replaces an entry. If e.ID is empty, a new ID is
	// generated and written back into e.
	Put(ctx context.Context, e *Entry) error

	// Get retrieves an entry by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Entry, error)

	// List returns every cataloged entry, ordered by ID.
	List(ctx context.Context) ([]*Entry, error)

	// Delete removes an entry by ID. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
