package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilium/snowball/pkg/stream"
	"github.com/nilium/snowball/pkg/wire"
)

func TestUint32RoundTrip(t *testing.T) {
	buf := stream.NewBuffer(stream.ModeWrite)
	require.NoError(t, wire.WriteUint32(buf, 0xDEADBEEF))
	assert.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE}, buf.Bytes())

	rd := stream.NewBufferFromBytes(buf.Bytes())
	v, err := wire.ReadUint32(rd)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), v)
}

func TestSint32RoundTrip(t *testing.T) {
	buf := stream.NewBuffer(stream.ModeWrite)
	require.NoError(t, wire.WriteSint32(buf, -12345))

	rd := stream.NewBufferFromBytes(buf.Bytes())
	v, err := wire.ReadSint32(rd)
	require.NoError(t, err)
	assert.Equal(t, int32(-12345), v)
}

func TestFloat32RoundTrip(t *testing.T) {
	buf := stream.NewBuffer(stream.ModeWrite)
	require.NoError(t, wire.WriteFloat32(buf, 3.14159))

	rd := stream.NewBufferFromBytes(buf.Bytes())
	v, err := wire.ReadFloat32(rd)
	require.NoError(t, err)
	assert.InDelta(t, 3.14159, v, 0.00001)
}

func TestReadUint32EOF(t *testing.T) {
	rd := stream.NewBufferFromBytes(nil)
	_, err := wire.ReadUint32(rd)
	require.ErrorIs(t, err, wire.ErrEOF)
}

func TestReadUint32ShortOnNullStream(t *testing.T) {
	_, err := wire.ReadUint32(stream.NewNull())
	require.ErrorIs(t, err, wire.ErrEOF)
}

func TestWriteUint32OnNullStream(t *testing.T) {
	// Null always reports EOF, so a short write against it surfaces as
	// ErrEOF rather than ErrCannotWrite.
	err := wire.WriteUint32(stream.NewNull(), 1)
	require.ErrorIs(t, err, wire.ErrEOF)
}

func TestWriteUint32CannotWriteOnModeMismatch(t *testing.T) {
	// A read-mode Buffer's Write is a no-op returning (0, nil); EOF() is
	// false until something has actually been read past the end, so this
	// surfaces as ErrCannotWrite.
	rd := stream.NewBufferFromBytes([]byte{1, 2, 3, 4})
	err := wire.WriteUint32(rd, 1)
	require.ErrorIs(t, err, wire.ErrCannotWrite)
}

func TestBytesRoundTrip(t *testing.T) {
	buf := stream.NewBuffer(stream.ModeWrite)
	require.NoError(t, wire.WriteBytes(buf, []byte("hello")))

	rd := stream.NewBufferFromBytes(buf.Bytes())
	out := make([]byte, 5)
	require.NoError(t, wire.ReadBytes(rd, out))
	assert.Equal(t, "hello", string(out))
}
