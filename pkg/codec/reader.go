package codec

import (
	"context"

	"github.com/nilium/snowball/internal/logger"
	"github.com/nilium/snowball/internal/telemetry"
	"github.com/nilium/snowball/pkg/allocator"
	"github.com/nilium/snowball/pkg/frame"
	"github.com/nilium/snowball/pkg/stream"
	"github.com/nilium/snowball/pkg/wire"
)

// CompoundReaderFunc reads one compound's body using r and returns the
// caller's in-memory representation of it.
//
// If the compound participates in a reference cycle, call Publish with the
// partially-built value before reading anything that might reach back to
// this same compound — a back-reference encountered before Publish is
// called observes a nil value, never the finished one, since the slot is
// marked expanded before this function runs and there is no way to
// retroactively fix up an already-returned nil.
type CompoundReaderFunc func(r *Reader) (any, error)

type compoundSlot struct {
	offset   int64
	value    any
	unpacked bool
}

// Reader decodes a Snowball stream.
type Reader struct {
	sess        session
	slots       []compoundSlot
	expandStack []int
}

// NewReader returns a closed Reader using alloc for BYTES destinations it
// allocates when the caller supplies none; array results are allocated
// with make, not from alloc.
func NewReader(alloc allocator.Allocator) *Reader {
	return &Reader{sess: session{allocator: alloc}}
}

// OpenReader binds s and opens a reader session in one step.
func OpenReader(s stream.Stream, alloc allocator.Allocator) (*Reader, error) {
	return OpenReaderCtx(context.Background(), s, alloc)
}

// OpenReaderCtx is OpenReader with an explicit context for logging and
// tracing.
func OpenReaderCtx(ctx context.Context, s stream.Stream, alloc allocator.Allocator) (*Reader, error) {
	r := NewReader(alloc)
	r.sess.ctx = ctx
	if err := r.Bind(s); err != nil {
		return nil, err
	}
	if err := r.Open(); err != nil {
		return nil, err
	}
	return r, nil
}

// Bind attaches s to the session. Only valid while closed.
func (r *Reader) Bind(s stream.Stream) error {
	return r.sess.bind(s)
}

// Open parses the root header and mapping table over the bound stream,
// validates the magic, and positions the stream at the DATA chunk so the
// first Read* call on the session reads the top-level chunk.
func (r *Reader) Open() error {
	if err := r.sess.beginOpen(); err != nil {
		return err
	}

	_, span := telemetry.StartCodecSpan(r.sess.ctx, telemetry.SpanReaderOpen, r.sess.id)
	defer span.End()

	origin, err := r.sess.stream.Tell()
	if err != nil {
		return wrapStreamErr(err)
	}

	root, err := frame.ReadRoot(r.sess.stream)
	if err != nil {
		return wrapStreamErr(err)
	}

	identOK, version := frame.ParseMagic(root.Magic)
	if !identOK {
		return ErrMalformedMagicHead
	}
	if version > frame.CurrentVersion {
		return ErrMalformedMagicVersion
	}

	r.sess.origin = origin
	r.slots = make([]compoundSlot, root.NumCompounds)

	if _, err := r.sess.stream.Seek(origin+int64(root.MappingsOffset), stream.SeekStart); err != nil {
		return wrapStreamErr(err)
	}
	for i := uint32(0); i < root.NumCompounds; i++ {
		mapping, err := wire.ReadUint32(r.sess.stream)
		if err != nil {
			return wrapStreamErr(err)
		}
		r.slots[i].offset = origin + int64(root.CompoundsOffset) + int64(mapping)
	}

	if _, err := r.sess.stream.Seek(origin+int64(root.DataOffset), stream.SeekStart); err != nil {
		return wrapStreamErr(err)
	}
	dataHdr, err := frame.ReadChunkHeader(r.sess.stream)
	if err != nil {
		return wrapStreamErr(err)
	}
	if dataHdr.Kind != frame.KindData {
		return ErrInvalidRoot
	}

	r.sess.mode = modeReader
	r.sess.logOpen(r.sess.stream.Kind())
	return nil
}

func (r *Reader) checkReadable() error {
	return r.sess.checkMode(modeReader)
}

// matchHeader reads a ChunkHeader at the current position and checks its
// kind and name against what the caller expects. On a kind or name
// mismatch, the stream position is restored to where matchHeader started so
// the caller can try matching something else (or report the mismatch to
// its own caller) without having consumed the bytes. When nullable is true,
// a NULL_POINTER chunk is accepted in place of expectedKind.
func (r *Reader) matchHeader(expectedKind, name uint32, nullable bool) (frame.ChunkHeader, bool, error) {
	pos, err := r.sess.stream.Tell()
	if err != nil {
		return frame.ChunkHeader{}, false, wrapStreamErr(err)
	}

	hdr, err := frame.ReadChunkHeader(r.sess.stream)
	if err != nil {
		return frame.ChunkHeader{}, false, wrapStreamErr(err)
	}

	isNull := nullable && hdr.Kind == frame.KindNullPointer
	if hdr.Kind != expectedKind && !isNull {
		r.sess.stream.Seek(pos, stream.SeekStart)
		return frame.ChunkHeader{}, false, ErrWrongKind
	}
	if hdr.Name != name {
		r.sess.stream.Seek(pos, stream.SeekStart)
		return frame.ChunkHeader{}, false, ErrBadName
	}
	return hdr, isNull, nil
}

// readPrimitive reads a fixed-width primitive value at opStart, checking
// that hdr's declared size matches a header plus width exactly before
// calling readVal. On any failure the stream is restored to opStart so the
// caller can retry or diagnose without losing its place.
func readPrimitive[T any](r *Reader, opStart int64, hdr frame.ChunkHeader, width uint32, readVal func(stream.Stream) (T, error)) (T, error) {
	var zero T
	if hdr.Size != frame.ChunkHeaderSize+width {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return zero, ErrWrongKind
	}
	v, err := readVal(r.sess.stream)
	if err != nil {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return zero, wrapStreamErr(err)
	}
	return v, nil
}

// ReadUint32 reads a UINT32 chunk named name.
func (r *Reader) ReadUint32(name uint32) (uint32, error) {
	if err := r.checkReadable(); err != nil {
		return 0, err
	}
	opStart, err := r.sess.stream.Tell()
	if err != nil {
		return 0, wrapStreamErr(err)
	}
	hdr, _, err := r.matchHeader(frame.KindUint32, name, false)
	if err != nil {
		return 0, err
	}
	return readPrimitive(r, opStart, hdr, 4, wire.ReadUint32)
}

// ReadSint32 reads a SINT32 chunk named name.
func (r *Reader) ReadSint32(name uint32) (int32, error) {
	if err := r.checkReadable(); err != nil {
		return 0, err
	}
	opStart, err := r.sess.stream.Tell()
	if err != nil {
		return 0, wrapStreamErr(err)
	}
	hdr, _, err := r.matchHeader(frame.KindSint32, name, false)
	if err != nil {
		return 0, err
	}
	return readPrimitive(r, opStart, hdr, 4, wire.ReadSint32)
}

// ReadFloat32 reads a FLOAT chunk named name.
func (r *Reader) ReadFloat32(name uint32) (float32, error) {
	if err := r.checkReadable(); err != nil {
		return 0, err
	}
	opStart, err := r.sess.stream.Tell()
	if err != nil {
		return 0, wrapStreamErr(err)
	}
	hdr, _, err := r.matchHeader(frame.KindFloat, name, false)
	if err != nil {
		return 0, err
	}
	return readPrimitive(r, opStart, hdr, 4, wire.ReadFloat32)
}

// ReadBytes reads a BYTES chunk named name. If dest is non-nil, its
// contents are read into dest (which must be at least the chunk's declared
// length); otherwise a buffer is allocated via the session's Allocator. A
// NULL_POINTER chunk in name's place returns (nil, nil).
func (r *Reader) ReadBytes(name uint32, dest []byte) ([]byte, error) {
	if err := r.checkReadable(); err != nil {
		return nil, err
	}
	opStart, err := r.sess.stream.Tell()
	if err != nil {
		return nil, wrapStreamErr(err)
	}
	hdr, isNull, err := r.matchHeader(frame.KindBytes, name, true)
	if err != nil {
		return nil, err
	}
	if isNull {
		return nil, nil
	}
	if hdr.Size < frame.ChunkHeaderSize {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return nil, ErrWrongKind
	}
	length := hdr.Size - frame.ChunkHeaderSize

	out := dest
	if out == nil {
		out = r.sess.allocator.Allocate(int(length))
		if out == nil {
			r.sess.stream.Seek(opStart, stream.SeekStart)
			return nil, ErrOutOfMemory
		}
	} else if uint32(len(out)) < length {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return nil, ErrInvalidOperation
	}

	if err := wire.ReadBytes(r.sess.stream, out[:length]); err != nil {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return nil, wrapStreamErr(err)
	}
	return out[:length], nil
}

func readArray[T any](r *Reader, name uint32, elementKind uint32, dest []T, readElem func(stream.Stream) (T, error)) ([]T, error) {
	if err := r.checkReadable(); err != nil {
		return nil, err
	}
	opStart, err := r.sess.stream.Tell()
	if err != nil {
		return nil, wrapStreamErr(err)
	}
	_, isNull, err := r.matchHeader(frame.KindArray, name, true)
	if err != nil {
		return nil, err
	}
	if isNull {
		return nil, nil
	}
	length, elemKind, err := frame.ReadArrayTail(r.sess.stream)
	if err != nil {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return nil, wrapStreamErr(err)
	}
	if elemKind != elementKind {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return nil, ErrWrongKind
	}
	if length == 0 {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return nil, ErrEmptyArray
	}

	out := dest
	if out == nil {
		out = make([]T, length)
	} else if uint32(len(out)) < length {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return nil, ErrInvalidOperation
	}
	for i := uint32(0); i < length; i++ {
		v, err := readElem(r.sess.stream)
		if err != nil {
			r.sess.stream.Seek(opStart, stream.SeekStart)
			return nil, wrapStreamErr(err)
		}
		out[i] = v
	}
	return out[:length], nil
}

// ReadUint32Array reads an ARRAY chunk of UINT32 elements.
func (r *Reader) ReadUint32Array(name uint32, dest []uint32) ([]uint32, error) {
	return readArray(r, name, frame.KindUint32, dest, wire.ReadUint32)
}

// ReadSint32Array reads an ARRAY chunk of SINT32 elements.
func (r *Reader) ReadSint32Array(name uint32, dest []int32) ([]int32, error) {
	return readArray(r, name, frame.KindSint32, dest, wire.ReadSint32)
}

// ReadFloat32Array reads an ARRAY chunk of FLOAT elements.
func (r *Reader) ReadFloat32Array(name uint32, dest []float32) ([]float32, error) {
	return readArray(r, name, frame.KindFloat, dest, wire.ReadFloat32)
}

// Publish sets the value of the compound currently being expanded (the one
// whose CompoundReaderFunc is running). Calling it more than once per
// compound overwrites the previous value; calling it outside a
// CompoundReaderFunc has no effect.
func (r *Reader) Publish(value any) {
	if len(r.expandStack) == 0 {
		return
	}
	r.slots[r.expandStack[len(r.expandStack)-1]].value = value
}

func (r *Reader) resolveCompoundIndex(idx uint32, fn CompoundReaderFunc) (any, error) {
	if idx == 0 {
		return nil, ErrInvalidOperation
	}
	slotIdx := int(idx - 1)
	if slotIdx < 0 || slotIdx >= len(r.slots) {
		return nil, ErrInvalidRoot
	}
	slot := &r.slots[slotIdx]
	if slot.unpacked {
		return slot.value, nil
	}

	savedPos, err := r.sess.stream.Tell()
	if err != nil {
		return nil, wrapStreamErr(err)
	}
	if _, err := r.sess.stream.Seek(slot.offset, stream.SeekStart); err != nil {
		return nil, wrapStreamErr(err)
	}
	chdr, err := frame.ReadChunkHeader(r.sess.stream)
	if err != nil {
		r.sess.stream.Seek(savedPos, stream.SeekStart)
		return nil, wrapStreamErr(err)
	}
	if chdr.Kind != frame.KindCompound {
		r.sess.stream.Seek(savedPos, stream.SeekStart)
		return nil, ErrWrongKind
	}
	if chdr.Name != idx {
		r.sess.stream.Seek(savedPos, stream.SeekStart)
		return nil, ErrBadName
	}

	logger.DebugCtx(r.sess.ctx, "expanding compound", logger.SessionID(r.sess.id), logger.CompoundIndex(idx))
	_, span := telemetry.StartCompoundSpan(r.sess.ctx, r.sess.id, idx)

	slot.unpacked = true
	r.expandStack = append(r.expandStack, slotIdx)
	value, rerr := fn(r)
	r.expandStack = r.expandStack[:len(r.expandStack)-1]

	if rerr != nil {
		telemetry.RecordError(r.sess.ctx, rerr)
		span.End()
		r.sess.stream.Seek(savedPos, stream.SeekStart)
		return nil, rerr
	}
	span.End()
	if slot.value == nil {
		slot.value = value
	}

	if _, err := r.sess.stream.Seek(savedPos, stream.SeekStart); err != nil {
		return nil, wrapStreamErr(err)
	}
	return slot.value, nil
}

// ReadCompound reads a COMPOUND_REF chunk named name, expanding the
// referenced compound's body via fn on first encounter and returning the
// previously-published value on any later reference to the same compound.
// A NULL_POINTER chunk in name's place returns (nil, nil).
func (r *Reader) ReadCompound(name uint32, fn CompoundReaderFunc) (any, error) {
	if err := r.checkReadable(); err != nil {
		return nil, err
	}
	opStart, err := r.sess.stream.Tell()
	if err != nil {
		return nil, wrapStreamErr(err)
	}
	_, isNull, err := r.matchHeader(frame.KindCompoundRef, name, true)
	if err != nil {
		return nil, err
	}
	if isNull {
		return nil, nil
	}
	idx, err := wire.ReadUint32(r.sess.stream)
	if err != nil {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return nil, wrapStreamErr(err)
	}
	value, err := r.resolveCompoundIndex(idx, fn)
	if err != nil {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return nil, err
	}
	return value, nil
}

// ReadCompoundArray reads an ARRAY chunk of COMPOUND_REF elements, expanding
// each referenced compound the same way ReadCompound does. A NULL_POINTER
// chunk in name's place returns (nil, nil).
func (r *Reader) ReadCompoundArray(name uint32, fn CompoundReaderFunc) ([]any, error) {
	if err := r.checkReadable(); err != nil {
		return nil, err
	}
	opStart, err := r.sess.stream.Tell()
	if err != nil {
		return nil, wrapStreamErr(err)
	}
	_, isNull, err := r.matchHeader(frame.KindArray, name, true)
	if err != nil {
		return nil, err
	}
	if isNull {
		return nil, nil
	}
	length, elemKind, err := frame.ReadArrayTail(r.sess.stream)
	if err != nil {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return nil, wrapStreamErr(err)
	}
	if elemKind != frame.KindCompoundRef {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return nil, ErrWrongKind
	}
	if length == 0 {
		r.sess.stream.Seek(opStart, stream.SeekStart)
		return nil, ErrEmptyArray
	}

	values := make([]any, length)
	for i := uint32(0); i < length; i++ {
		idx, err := wire.ReadUint32(r.sess.stream)
		if err != nil {
			r.sess.stream.Seek(opStart, stream.SeekStart)
			return nil, wrapStreamErr(err)
		}
		v, err := r.resolveCompoundIndex(idx, fn)
		if err != nil {
			r.sess.stream.Seek(opStart, stream.SeekStart)
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Close ends the reader session. After Close, the session is closed and
// may be reused for a new Open.
func (r *Reader) Close() error {
	if err := r.checkReadable(); err != nil {
		return err
	}
	r.sess.logClose(nil)
	r.slots = nil
	r.expandStack = nil
	r.sess.mode = modeClosed
	return nil
}
