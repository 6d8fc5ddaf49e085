// Package wire encodes and decodes Snowball's fixed-width primitive values
// onto a pkg/stream.Stream.
//
// All values are written in base endian (little-endian), unconditionally,
// regardless of host byte order. There is no padding: every primitive is
// exactly 4 bytes on the wire.
package wire

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/nilium/snowball/pkg/stream"
)

// Byte widths of every wire primitive. Chunk and array headers use these
// to compute declared chunk sizes.
const (
	SizeUint32 = 4
	SizeSint32 = 4
	SizeFloat32 = 4
)

// Sentinel I/O errors. These are the wire-level vocabulary; pkg/codec maps
// them onto codec.Error via errors.Is so that a short read/write or an EOF
// mid-primitive surfaces the same typed error the rest of the session uses.
var (
	// ErrCannotRead is returned when the stream yields fewer bytes than
	// requested and does not report EOF.
	ErrCannotRead = errors.New("wire: cannot read requested bytes")
	// ErrCannotWrite is returned when the stream accepts fewer bytes than
	// requested and does not report EOF.
	ErrCannotWrite = errors.New("wire: cannot write requested bytes")
	// ErrEOF is returned when the stream reports end-of-stream after a
	// short read or a short write.
	ErrEOF = errors.New("wire: unexpected end of stream")
)

// readFull reads exactly len(buf) bytes, distinguishing a short read that
// hit EOF (ErrEOF) from a short read on a stream that is not yet at EOF
// (ErrCannotRead, e.g. a transient short read on a pipe-like stream).
func readFull(s stream.Stream, buf []byte) error {
	n, err := s.Read(buf)
	if err != nil {
		return err
	}
	if n < len(buf) {
		if s.EOF() {
			return ErrEOF
		}
		return ErrCannotRead
	}
	return nil
}

func writeFull(s stream.Stream, buf []byte) error {
	n, err := s.Write(buf)
	if err != nil {
		return err
	}
	if n < len(buf) {
		if s.EOF() {
			return ErrEOF
		}
		return ErrCannotWrite
	}
	return nil
}

// WriteUint32 writes v as a 4-byte little-endian unsigned integer.
func WriteUint32(s stream.Stream, v uint32) error {
	var buf [SizeUint32]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return writeFull(s, buf[:])
}

// ReadUint32 reads a 4-byte little-endian unsigned integer.
func ReadUint32(s stream.Stream) (uint32, error) {
	var buf [SizeUint32]byte
	if err := readFull(s, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteSint32 writes v as a 4-byte little-endian signed integer (two's
// complement, same bit pattern as the unsigned encoding).
func WriteSint32(s stream.Stream, v int32) error {
	return WriteUint32(s, uint32(v))
}

// ReadSint32 reads a 4-byte little-endian signed integer.
func ReadSint32(s stream.Stream) (int32, error) {
	v, err := ReadUint32(s)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// WriteFloat32 writes v as a 4-byte little-endian IEEE-754 single-precision
// float.
func WriteFloat32(s stream.Stream, v float32) error {
	return WriteUint32(s, math.Float32bits(v))
}

// ReadFloat32 reads a 4-byte little-endian IEEE-754 single-precision float.
func ReadFloat32(s stream.Stream) (float32, error) {
	v, err := ReadUint32(s)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// WriteBytes writes raw bytes verbatim; used by callers (pkg/frame,
// pkg/codec) for payloads that are not 4-byte primitives.
func WriteBytes(s stream.Stream, buf []byte) error {
	return writeFull(s, buf)
}

// ReadBytes reads exactly len(buf) bytes into buf.
func ReadBytes(s stream.Stream, buf []byte) error {
	return readFull(s, buf)
}
