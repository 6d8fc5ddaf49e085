package stream

import "errors"

// Mode selects a Buffer's direction. A Buffer is exclusively a reader or a
// writer, never both — grounded on the original library's stringstream
// buffer, whose read()/write() calls are no-ops when the buffer's mode
// doesn't match the call.
type Mode int

const (
	// ModeRead allows Read and Seek over previously-written data.
	ModeRead Mode = iota
	// ModeWrite allows Write and Seek; it is the mode codec.Writer uses
	// for its main buffer and every suspended compound buffer.
	ModeWrite
)

// ErrNegativeSeek is returned by Seek when the resulting position would be
// negative.
var ErrNegativeSeek = errors.New("stream: negative seek position")

// Buffer is an in-memory Stream backed by a growable byte slice.
//
// Read is a no-op (returns 0, nil) on a ModeWrite buffer and Write is a
// no-op on a ModeRead buffer, matching the original's mode-gated
// behavior — callers that need both directions use two Buffers (as
// codec.Writer does: one ModeWrite buffer per compound body, assembled
// and then read back out via Bytes()).
type Buffer struct {
	mode Mode
	data []byte
	pos  int
	eof  bool
}

// NewBuffer returns an empty Buffer in the given mode.
func NewBuffer(mode Mode) *Buffer {
	return &Buffer{mode: mode}
}

// NewBufferFromBytes returns a ModeRead Buffer over a copy of data.
func NewBufferFromBytes(data []byte) *Buffer {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &Buffer{mode: ModeRead, data: cp}
}

func (b *Buffer) Read(p []byte) (int, error) {
	if b.mode != ModeRead {
		return 0, nil
	}
	if b.pos >= len(b.data) {
		b.eof = true
		return 0, nil
	}
	n := copy(p, b.data[b.pos:])
	b.pos += n
	if b.pos >= len(b.data) {
		b.eof = true
	}
	return n, nil
}

func (b *Buffer) Write(p []byte) (int, error) {
	if b.mode != ModeWrite {
		return 0, nil
	}
	end := b.pos + len(p)
	if end > len(b.data) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:end], p)
	b.pos = end
	return len(p), nil
}

func (b *Buffer) Seek(offset int64, whence Whence) (int64, error) {
	var base int64
	switch whence {
	case SeekStart:
		base = 0
	case SeekCurrent:
		base = int64(b.pos)
	default:
		return 0, ErrInvalidWhence
	}
	newPos := base + offset
	if newPos < 0 {
		return 0, ErrNegativeSeek
	}
	b.pos = int(newPos)
	b.eof = b.pos >= len(b.data)
	return newPos, nil
}

func (b *Buffer) Tell() (int64, error) {
	return int64(b.pos), nil
}

func (b *Buffer) EOF() bool { return b.eof }

func (b *Buffer) Close() error {
	b.data = nil
	return nil
}

func (b *Buffer) Kind() string { return "buffer" }

// Bytes returns the buffer's full backing contents, independent of the
// current cursor position. codec.Writer uses this at Close time to copy a
// finished compound or main body onto the underlying stream.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the number of bytes written to the buffer so far.
func (b *Buffer) Len() int { return len(b.data) }
