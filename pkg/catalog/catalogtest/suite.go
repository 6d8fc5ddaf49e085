// Package catalogtest provides a conformance suite shared across
// catalog.Store backends, so memory and badger exercise identical
// behavioral guarantees.
package catalogtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilium/snowball/pkg/catalog"
)

// RunConformanceSuite runs the full behavioral contract of catalog.Store
// against a fresh store produced by newStore for each subtest.
func RunConformanceSuite(t *testing.T, newStore func(t *testing.T) catalog.Store) {
	t.Run("PutAssignsID", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		e := &catalog.Entry{Location: "a.snowball", Size: 10}
		require.NoError(t, s.Put(ctx, e))
		assert.NotEmpty(t, e.ID)
	})

	t.Run("GetRoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		e := &catalog.Entry{ID: "fixed", Location: "b.snowball", Size: 42, CompoundCount: 2}
		require.NoError(t, s.Put(ctx, e))

		got, err := s.Get(ctx, "fixed")
		require.NoError(t, err)
		assert.Equal(t, "b.snowball", got.Location)
		assert.Equal(t, uint32(42), got.Size)
		assert.Equal(t, uint32(2), got.CompoundCount)
	})

	t.Run("GetMissingReturnsErrNotFound", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "nope")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("PutReplacesExisting", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, &catalog.Entry{ID: "dup", Size: 1}))
		require.NoError(t, s.Put(ctx, &catalog.Entry{ID: "dup", Size: 2}))

		got, err := s.Get(ctx, "dup")
		require.NoError(t, err)
		assert.Equal(t, uint32(2), got.Size)
	})

	t.Run("ListReturnsAllEntries", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, &catalog.Entry{ID: "one"}))
		require.NoError(t, s.Put(ctx, &catalog.Entry{ID: "two"}))

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("DeleteRemovesEntry", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, &catalog.Entry{ID: "gone"}))
		require.NoError(t, s.Delete(ctx, "gone"))

		_, err := s.Get(ctx, "gone")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("DeleteMissingIsNotAnError", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Delete(context.Background(), "never-existed"))
	})
}
