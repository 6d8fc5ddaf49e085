// Package local provides a filesystem-backed blobstore.Blobstore.
//
// Blobs are stored as files with the key as a path relative to a base
// directory, grounded on the teacher's pkg/payload/store/fs.Store (same
// temp-file-then-rename write discipline, same prefix-directory listing
// and cleanup-on-delete behavior).
package local

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nilium/snowball/pkg/blobstore"
	"github.com/nilium/snowball/pkg/stream"
)

// Store is a filesystem-backed blobstore.Blobstore.
type Store struct {
	basePath string
}

// New creates a filesystem blobstore rooted at basePath, creating the
// directory if it does not already exist.
func New(basePath string) (*Store, error) {
	if basePath == "" {
		return nil, errors.New("blobstore/local: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("blobstore/local: base path is not a directory")
	}
	return &Store{basePath: basePath}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(key))
}

// commitStream wraps *stream.File so that a Create call writes to a
// temporary file and only becomes visible at its final path once Close
// succeeds, matching the teacher's write-then-rename atomicity.
type commitStream struct {
	*stream.File
	tmpPath   string
	finalPath string
}

func (c *commitStream) Close() error {
	if err := c.File.Close(); err != nil {
		os.Remove(c.tmpPath)
		return err
	}
	return os.Rename(c.tmpPath, c.finalPath)
}

// Create implements blobstore.Blobstore.
func (s *Store) Create(ctx context.Context, key string) (stream.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	finalPath := s.path(key)
	if err := os.MkdirAll(filepath.Dir(finalPath), 0o755); err != nil {
		return nil, err
	}

	tmpPath := finalPath + ".tmp"
	f, err := stream.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	return &commitStream{File: f, tmpPath: tmpPath, finalPath: finalPath}, nil
}

// Open implements blobstore.Blobstore.
func (s *Store) Open(ctx context.Context, key string) (stream.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := stream.OpenFile(s.path(key), os.O_RDONLY, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Delete implements blobstore.Blobstore.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.path(key)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	s.cleanEmptyDirs(filepath.Dir(path))
	return nil
}

// cleanEmptyDirs removes empty parent directories up to the base path.
func (s *Store) cleanEmptyDirs(dir string) {
	for dir != s.basePath && strings.HasPrefix(dir, s.basePath) {
		if err := os.Remove(dir); err != nil {
			break
		}
		dir = filepath.Dir(dir)
	}
}

// List implements blobstore.Blobstore. prefix is resolved as a path under
// the base directory: List returns the file at that path, or every file
// below that directory. Keys that only share a leading string with prefix
// ("blo" against "blobs/a") are not listed.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefixPath := s.path(prefix)
	var keys []string

	if _, err := os.Stat(prefixPath); err != nil {
		if os.IsNotExist(err) {
			return keys, nil
		}
		return nil, err
	}

	err := filepath.WalkDir(prefixPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".tmp") {
			return nil
		}
		rel, err := filepath.Rel(s.basePath, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(keys)
	return keys, nil
}

// Close implements blobstore.Blobstore. Local storage holds no resources
// beyond open file handles, which callers close individually.
func (s *Store) Close() error { return nil }

var _ blobstore.Blobstore = (*Store)(nil)
