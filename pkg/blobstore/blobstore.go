// Package blobstore provides pluggable backing storage for .snowball files.
//
// A Blobstore opens a pkg/stream.Stream for a key, so the codec's Writer
// and Reader never need to know whether the underlying bytes live on a
// local disk or in an S3 bucket.
package blobstore

import (
	"context"
	"errors"

	"github.com/nilium/snowball/pkg/stream"
)

// ErrNotFound indicates the requested key has no corresponding blob.
var ErrNotFound = errors.New("blobstore: object not found")

// Blobstore opens read/write streams over keyed blobs.
type Blobstore interface {
	// Create opens a stream for writing a new or replaced blob at key.
	// The returned stream must be closed by the caller; closing flushes
	// any buffering the backend performs.
	Create(ctx context.Context, key string) (stream.Stream, error)

	// Open opens a stream for reading the blob at key.
	// Returns ErrNotFound if key does not exist.
	Open(ctx context.Context, key string) (stream.Stream, error)

	// Delete removes the blob at key. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// List returns all keys with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}
