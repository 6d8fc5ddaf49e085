// Package frame defines Snowball's on-wire layout: the root header, chunk
// header, array header, and the chunk kind tags that appear in them.
//
// # Magic and version
//
// The root header's magic field packs two ASCII identifier bytes and two
// ASCII decimal version digits into one little-endian uint32. On disk the
// current format's magic reads as the four bytes 'S' 'Z' '2' '0'
// (0x53 0x5A 0x32 0x30) — decoded as a little-endian uint32 that is
// 0x30325A53. The low 16 bits ('S','Z') identify the format; the high 16
// bits are the two version digits, compared numerically so a file written
// by a newer-version encoder is rejected rather than silently misread.
package frame

import "encoding/binary"

// Chunk kind tags, matching the original library's sz_chunk_id_t.
const (
	KindInvalid     uint32 = 0 // reserved, never appears on the wire
	KindCompound    uint32 = 1
	KindCompoundRef uint32 = 2
	KindFloat       uint32 = 3
	KindUint32      uint32 = 4
	KindSint32      uint32 = 5
	KindArray       uint32 = 6
	KindBytes       uint32 = 7
	KindNullPointer uint32 = 8
	KindDouble      uint32 = 9 // reserved, unimplemented
	KindData        uint32 = 10
)

// DataName is the fixed chunk name used for the top-level DATA wrapper
// chunk. It is not a caller-chosen tag, so it is picked outside the range
// a caller would plausibly use for its own named chunks.
const DataName uint32 = 0xD47A0000

// Sizes, in bytes, of each header shape on the wire. All fields are 4-byte
// primitives; there is no padding.
const (
	RootSize        = 24 // magic, size, num_compounds, mappings_offset, compounds_offset, data_offset
	ChunkHeaderSize = 12 // kind, name, size
	ArrayHeaderSize = ChunkHeaderSize + 8 // + length, element_kind
	CompoundRefSize = ChunkHeaderSize + 4 // + compound index
)

const (
	magicIdentLow  byte = 'S'
	magicIdentHigh byte = 'Z'

	versionTens byte = '2'
	versionOnes byte = '0'
)

// CurrentVersion is the format version this package reads and writes,
// as the two-digit integer encoded in the magic's high 16 bits.
const CurrentVersion = int(versionTens-'0')*10 + int(versionOnes-'0')

// magicBytes is the magic's on-disk byte sequence, low byte first.
var magicBytes = [4]byte{magicIdentLow, magicIdentHigh, versionTens, versionOnes}

// MagicValue is the root header's magic field for CurrentVersion, decoded
// as a little-endian uint32 the way ReadUint32 would see it.
var MagicValue = binary.LittleEndian.Uint32(magicBytes[:])

// ParseMagic splits a root header's magic field into its identifier check
// and version number. identOK is false when the low two bytes don't match
// this format's identifier at all (MALFORMED_MAGIC_HEAD); version is the
// two-digit version number encoded in the high two bytes, to be compared
// against CurrentVersion by the caller (MALFORMED_MAGIC_VERSION when
// greater).
func ParseMagic(magic uint32) (identOK bool, version int) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], magic)
	identOK = b[0] == magicIdentLow && b[1] == magicIdentHigh
	version = int(b[2]-'0')*10 + int(b[3]-'0')
	return identOK, version
}

// Root is the 24-byte header at the start of every Snowball stream.
type Root struct {
	Magic           uint32
	Size            uint32 // total byte length of the encoded stream
	NumCompounds    uint32
	MappingsOffset  uint32 // byte offset from the stream start to the mapping table
	CompoundsOffset uint32 // byte offset from the stream start to the compound section
	DataOffset      uint32 // byte offset from the stream start to the DATA chunk
}

// ChunkHeader precedes every chunk's payload.
type ChunkHeader struct {
	Kind uint32
	Name uint32 // caller-chosen tag, or a compound's 1-based index for KindCompound
	Size uint32 // total chunk length, header included
}

// ArrayHeader precedes an ARRAY chunk's elements.
type ArrayHeader struct {
	ChunkHeader
	Length      uint32
	ElementKind uint32
}
