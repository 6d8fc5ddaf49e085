// Package stream provides the abstract I/O capability Snowball's codec
// sessions are built on: a small Read/Write/Seek/Tell/EOF/Close surface that
// Buffer, File, and Null each implement differently.
//
// A session never assumes anything about the concrete stream beyond this
// interface, so the same Writer/Reader code drives an in-memory buffer, a
// file on disk, or (for tests and dry runs) a stream that discards
// everything written to it.
package stream

import "errors"

// Whence selects the reference point for Seek, mirroring io.Seeker's
// SeekStart/SeekCurrent but scoped to the two cases Snowball's layout
// actually needs (there is no SeekEnd: every offset in the wire format is
// relative to the root, never to the end of the file).
type Whence int

const (
	// SeekStart seeks relative to the start of the stream.
	SeekStart Whence = iota
	// SeekCurrent seeks relative to the current position.
	SeekCurrent
)

// ErrInvalidWhence is returned by Seek for an unrecognized Whence value.
var ErrInvalidWhence = errors.New("stream: invalid whence")

// Stream is the capability a codec session reads from and writes to.
//
// Read and Write follow io.Reader/io.Writer short-read/short-write
// semantics: implementations may return fewer bytes than requested without
// error. Callers distinguish a genuine end-of-stream from a transient short
// read via EOF.
type Stream interface {
	// Read reads up to len(p) bytes into p, returning the number of bytes
	// read.
	Read(p []byte) (n int, err error)
	// Write writes up to len(p) bytes from p, returning the number of
	// bytes written.
	Write(p []byte) (n int, err error)
	// Seek repositions the stream's cursor and returns the new absolute
	// position.
	Seek(offset int64, whence Whence) (int64, error)
	// Tell returns the current absolute position.
	Tell() (int64, error)
	// EOF reports whether the most recent Read reached the end of the
	// stream.
	EOF() bool
	// Close releases any resources held by the stream.
	Close() error
	// Kind identifies the concrete stream type for logging/tracing
	// ("file", "buffer", "null").
	Kind() string
}
