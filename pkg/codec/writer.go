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

// CompoundWriterFunc writes one compound's body using w. It is invoked at
// most once per distinct identity passed to WriteCompound/WriteCompoundArray
// — a repeated identity resolves to the same compound index without the
// function running again.
type CompoundWriterFunc func(w *Writer) error

// CompoundArrayItem pairs a compound identity with the function that writes
// its body, for WriteCompoundArray.
type CompoundArrayItem struct {
	Identity any
	Write    CompoundWriterFunc
}

// Writer encodes a Snowball stream.
//
// An identity is any comparable value the caller uses to recognize "the
// same compound again" — a pointer, a string key, an integer ID. The first
// WriteCompound call for a given identity assigns it the next compound
// index and runs its CompoundWriterFunc; every later call with an equal
// identity just emits a reference to the already-assigned index.
type Writer struct {
	sess session

	main       *stream.Buffer
	active     *stream.Buffer
	stack      []*stream.Buffer
	compounds  []*stream.Buffer
	identities map[any]uint32
}

// NewWriter returns a closed Writer using alloc for any buffer allocation
// it needs internally (currently unused by Writer directly, but accepted
// for symmetry with NewReader and future destination-buffer reuse).
func NewWriter(alloc allocator.Allocator) *Writer {
	return &Writer{sess: session{allocator: alloc}}
}

// OpenWriter binds s and opens a writer session in one step.
func OpenWriter(s stream.Stream, alloc allocator.Allocator) (*Writer, error) {
	return OpenWriterCtx(context.Background(), s, alloc)
}

// OpenWriterCtx is OpenWriter with an explicit context for logging and
// tracing.
func OpenWriterCtx(ctx context.Context, s stream.Stream, alloc allocator.Allocator) (*Writer, error) {
	w := NewWriter(alloc)
	w.sess.ctx = ctx
	if err := w.Bind(s); err != nil {
		return nil, err
	}
	if err := w.Open(); err != nil {
		return nil, err
	}
	return w, nil
}

// Bind attaches s to the session. Only valid while closed.
func (w *Writer) Bind(s stream.Stream) error {
	return w.sess.bind(s)
}

// Open begins a writer session over the bound stream.
func (w *Writer) Open() error {
	if err := w.sess.beginOpen(); err != nil {
		return err
	}
	origin, err := w.sess.stream.Tell()
	if err != nil {
		return wrapStreamErr(err)
	}
	w.sess.origin = origin
	w.main = stream.NewBuffer(stream.ModeWrite)
	w.active = w.main
	w.compounds = nil
	w.identities = make(map[any]uint32)
	w.sess.mode = modeWriter
	w.sess.logOpen(w.sess.stream.Kind())
	return nil
}

func (w *Writer) checkWritable() error {
	return w.sess.checkMode(modeWriter)
}

func (w *Writer) writeHeader(kind, name, size uint32) error {
	if err := frame.WriteChunkHeader(w.active, frame.ChunkHeader{Kind: kind, Name: name, Size: size}); err != nil {
		return wrapStreamErr(err)
	}
	return nil
}

func (w *Writer) writeNullPointer(name uint32) error {
	return w.writeHeader(frame.KindNullPointer, name, frame.ChunkHeaderSize)
}

// WriteUint32 writes a UINT32 chunk named name.
func (w *Writer) WriteUint32(name uint32, v uint32) error {
	if err := w.checkWritable(); err != nil {
		return err
	}
	if err := w.writeHeader(frame.KindUint32, name, frame.ChunkHeaderSize+wire.SizeUint32); err != nil {
		return err
	}
	if err := wire.WriteUint32(w.active, v); err != nil {
		return wrapStreamErr(err)
	}
	return nil
}

// WriteSint32 writes a SINT32 chunk named name.
func (w *Writer) WriteSint32(name uint32, v int32) error {
	if err := w.checkWritable(); err != nil {
		return err
	}
	if err := w.writeHeader(frame.KindSint32, name, frame.ChunkHeaderSize+wire.SizeSint32); err != nil {
		return err
	}
	if err := wire.WriteSint32(w.active, v); err != nil {
		return wrapStreamErr(err)
	}
	return nil
}

// WriteFloat32 writes a FLOAT chunk named name.
func (w *Writer) WriteFloat32(name uint32, v float32) error {
	if err := w.checkWritable(); err != nil {
		return err
	}
	if err := w.writeHeader(frame.KindFloat, name, frame.ChunkHeaderSize+wire.SizeFloat32); err != nil {
		return err
	}
	if err := wire.WriteFloat32(w.active, v); err != nil {
		return wrapStreamErr(err)
	}
	return nil
}

// WriteBytes writes a BYTES chunk named name. A nil or empty data writes a
// NULL_POINTER chunk in its place.
func (w *Writer) WriteBytes(name uint32, data []byte) error {
	if err := w.checkWritable(); err != nil {
		return err
	}
	if len(data) == 0 {
		return w.writeNullPointer(name)
	}
	if err := w.writeHeader(frame.KindBytes, name, frame.ChunkHeaderSize+uint32(len(data))); err != nil {
		return err
	}
	if _, err := w.active.Write(data); err != nil {
		return wrapStreamErr(err)
	}
	return nil
}

func writeArray[T any](w *Writer, name uint32, values []T, elementKind uint32, elemSize uint32, writeElem func(stream.Stream, T) error) error {
	if err := w.checkWritable(); err != nil {
		return err
	}
	if len(values) == 0 {
		return w.writeNullPointer(name)
	}
	size := uint32(frame.ArrayHeaderSize) + uint32(len(values))*elemSize
	hdr := frame.ArrayHeader{
		ChunkHeader: frame.ChunkHeader{Kind: frame.KindArray, Name: name, Size: size},
		Length:      uint32(len(values)),
		ElementKind: elementKind,
	}
	if err := frame.WriteArrayHeader(w.active, hdr); err != nil {
		return wrapStreamErr(err)
	}
	for _, v := range values {
		if err := writeElem(w.active, v); err != nil {
			return wrapStreamErr(err)
		}
	}
	return nil
}

// WriteUint32Array writes an ARRAY chunk of UINT32 elements.
func (w *Writer) WriteUint32Array(name uint32, values []uint32) error {
	return writeArray(w, name, values, frame.KindUint32, wire.SizeUint32, wire.WriteUint32)
}

// WriteSint32Array writes an ARRAY chunk of SINT32 elements.
func (w *Writer) WriteSint32Array(name uint32, values []int32) error {
	return writeArray(w, name, values, frame.KindSint32, wire.SizeSint32, wire.WriteSint32)
}

// WriteFloat32Array writes an ARRAY chunk of FLOAT elements.
func (w *Writer) WriteFloat32Array(name uint32, values []float32) error {
	return writeArray(w, name, values, frame.KindFloat, wire.SizeFloat32, wire.WriteFloat32)
}

// resolveCompound returns identity's compound index, assigning a new one
// and running fn if this is the first time identity has been seen.
func (w *Writer) resolveCompound(identity any, fn CompoundWriterFunc) (uint32, error) {
	if idx, ok := w.identities[identity]; ok {
		return idx, nil
	}

	buf := stream.NewBuffer(stream.ModeWrite)
	w.compounds = append(w.compounds, buf)
	idx := uint32(len(w.compounds))
	w.identities[identity] = idx

	logger.DebugCtx(w.sess.ctx, "writing compound", logger.SessionID(w.sess.id), logger.CompoundIndex(idx))
	_, span := telemetry.StartCompoundSpan(w.sess.ctx, w.sess.id, idx)

	w.stack = append(w.stack, w.active)
	w.active = buf
	err := fn(w)
	w.active = w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	if err != nil {
		telemetry.RecordError(w.sess.ctx, err)
		span.End()
		return 0, err
	}
	span.End()
	return idx, nil
}

func (w *Writer) writeCompoundRef(name, idx uint32) error {
	if err := w.writeHeader(frame.KindCompoundRef, name, frame.CompoundRefSize); err != nil {
		return err
	}
	if err := wire.WriteUint32(w.active, idx); err != nil {
		return wrapStreamErr(err)
	}
	return nil
}

// WriteCompound writes a COMPOUND_REF chunk named name pointing at
// identity's compound, first writing the compound body via fn if identity
// has not been seen in this session. A nil identity writes a NULL_POINTER
// chunk instead.
func (w *Writer) WriteCompound(name uint32, identity any, fn CompoundWriterFunc) error {
	if err := w.checkWritable(); err != nil {
		return err
	}
	if identity == nil {
		return w.writeNullPointer(name)
	}
	idx, err := w.resolveCompound(identity, fn)
	if err != nil {
		return err
	}
	return w.writeCompoundRef(name, idx)
}

// WriteCompoundArray writes an ARRAY chunk of COMPOUND_REF elements, one
// per item. A nil or empty items writes a NULL_POINTER chunk instead. Every
// item must carry a non-nil Identity; a nil element within a non-empty
// array is a caller error (ErrNullPointer) rather than a per-element null,
// since the wire format has no way to mark one array slot null without
// also marking the rest.
func (w *Writer) WriteCompoundArray(name uint32, items []CompoundArrayItem) error {
	if err := w.checkWritable(); err != nil {
		return err
	}
	if len(items) == 0 {
		return w.writeNullPointer(name)
	}
	size := uint32(frame.ArrayHeaderSize) + uint32(len(items))*wire.SizeUint32
	hdr := frame.ArrayHeader{
		ChunkHeader: frame.ChunkHeader{Kind: frame.KindArray, Name: name, Size: size},
		Length:      uint32(len(items)),
		ElementKind: frame.KindCompoundRef,
	}
	if err := frame.WriteArrayHeader(w.active, hdr); err != nil {
		return wrapStreamErr(err)
	}
	for _, item := range items {
		if item.Identity == nil {
			return ErrNullPointer
		}
		idx, err := w.resolveCompound(item.Identity, item.Write)
		if err != nil {
			return err
		}
		if err := wire.WriteUint32(w.active, idx); err != nil {
			return wrapStreamErr(err)
		}
	}
	return nil
}

// Close finishes the session: it lays out the mapping table and compound
// bodies, computes the root header's offsets per their resolved layout, and
// writes the root header, mapping table, compound section, and DATA chunk
// to the bound stream in that order. After Close, the session is closed and
// may be reused for a new Open.
func (w *Writer) Close() error {
	if err := w.checkWritable(); err != nil {
		return err
	}
	_, span := telemetry.StartCodecSpan(w.sess.ctx, telemetry.SpanWriterClose, w.sess.id,
		telemetry.CompoundCount(len(w.compounds)))
	defer span.End()

	numCompounds := uint32(len(w.compounds))
	mappings := make([]uint32, numCompounds)
	var cumulative uint32
	for i, buf := range w.compounds {
		mappings[i] = cumulative
		cumulative += uint32(frame.ChunkHeaderSize) + uint32(buf.Len())
	}
	compoundBodiesSize := cumulative

	mappingsOffset := uint32(frame.RootSize)
	compoundsOffset := mappingsOffset + numCompounds*wire.SizeUint32
	dataOffset := compoundsOffset + compoundBodiesSize
	mainSize := uint32(w.main.Len())
	totalSize := dataOffset + uint32(frame.ChunkHeaderSize) + mainSize

	root := frame.Root{
		Magic:           frame.MagicValue,
		Size:            totalSize,
		NumCompounds:    numCompounds,
		MappingsOffset:  mappingsOffset,
		CompoundsOffset: compoundsOffset,
		DataOffset:      dataOffset,
	}

	if err := w.finish(root, mappings); err != nil {
		telemetry.RecordError(w.sess.ctx, err)
		w.sess.logClose(err)
		w.release()
		return err
	}

	w.sess.logClose(nil)
	w.release()
	return nil
}

func (w *Writer) finish(root frame.Root, mappings []uint32) error {
	if err := frame.WriteRoot(w.sess.stream, root); err != nil {
		return wrapStreamErr(err)
	}
	for _, m := range mappings {
		if err := wire.WriteUint32(w.sess.stream, m); err != nil {
			return wrapStreamErr(err)
		}
	}
	for i, buf := range w.compounds {
		idx := uint32(i + 1)
		hdr := frame.ChunkHeader{Kind: frame.KindCompound, Name: idx, Size: uint32(frame.ChunkHeaderSize) + uint32(buf.Len())}
		if err := frame.WriteChunkHeader(w.sess.stream, hdr); err != nil {
			return wrapStreamErr(err)
		}
		if _, err := w.sess.stream.Write(buf.Bytes()); err != nil {
			return wrapStreamErr(err)
		}
	}
	dataHdr := frame.ChunkHeader{Kind: frame.KindData, Name: frame.DataName, Size: uint32(frame.ChunkHeaderSize) + uint32(w.main.Len())}
	if err := frame.WriteChunkHeader(w.sess.stream, dataHdr); err != nil {
		return wrapStreamErr(err)
	}
	if _, err := w.sess.stream.Write(w.main.Bytes()); err != nil {
		return wrapStreamErr(err)
	}
	return nil
}

func (w *Writer) release() {
	w.sess.mode = modeClosed
	w.main = nil
	w.active = nil
	w.stack = nil
	w.compounds = nil
	w.identities = nil
}
