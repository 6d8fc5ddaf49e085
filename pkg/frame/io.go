package frame

import (
	"github.com/nilium/snowball/pkg/stream"
	"github.com/nilium/snowball/pkg/wire"
)

// WriteRoot writes r's six fields in order.
func WriteRoot(s stream.Stream, r Root) error {
	fields := [...]uint32{r.Magic, r.Size, r.NumCompounds, r.MappingsOffset, r.CompoundsOffset, r.DataOffset}
	for _, v := range fields {
		if err := wire.WriteUint32(s, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadRoot reads a Root header.
func ReadRoot(s stream.Stream) (Root, error) {
	var r Root
	fields := [...]*uint32{&r.Magic, &r.Size, &r.NumCompounds, &r.MappingsOffset, &r.CompoundsOffset, &r.DataOffset}
	for _, f := range fields {
		v, err := wire.ReadUint32(s)
		if err != nil {
			return Root{}, err
		}
		*f = v
	}
	return r, nil
}

// WriteChunkHeader writes h's three fields in order.
func WriteChunkHeader(s stream.Stream, h ChunkHeader) error {
	if err := wire.WriteUint32(s, h.Kind); err != nil {
		return err
	}
	if err := wire.WriteUint32(s, h.Name); err != nil {
		return err
	}
	return wire.WriteUint32(s, h.Size)
}

// ReadChunkHeader reads a ChunkHeader.
func ReadChunkHeader(s stream.Stream) (ChunkHeader, error) {
	kind, err := wire.ReadUint32(s)
	if err != nil {
		return ChunkHeader{}, err
	}
	name, err := wire.ReadUint32(s)
	if err != nil {
		return ChunkHeader{}, err
	}
	size, err := wire.ReadUint32(s)
	if err != nil {
		return ChunkHeader{}, err
	}
	return ChunkHeader{Kind: kind, Name: name, Size: size}, nil
}

// WriteArrayHeader writes h's chunk header followed by length and
// element_kind.
func WriteArrayHeader(s stream.Stream, h ArrayHeader) error {
	if err := WriteChunkHeader(s, h.ChunkHeader); err != nil {
		return err
	}
	if err := wire.WriteUint32(s, h.Length); err != nil {
		return err
	}
	return wire.WriteUint32(s, h.ElementKind)
}

// ReadArrayTail reads an array chunk's length and element_kind fields,
// assuming the generic ChunkHeader has already been read (e.g. via the
// sequential chunk-match step, which must see a plain ChunkHeader before it
// knows the chunk is an array at all).
func ReadArrayTail(s stream.Stream) (length, elementKind uint32, err error) {
	length, err = wire.ReadUint32(s)
	if err != nil {
		return 0, 0, err
	}
	elementKind, err = wire.ReadUint32(s)
	if err != nil {
		return 0, 0, err
	}
	return length, elementKind, nil
}
