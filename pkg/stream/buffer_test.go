package stream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilium/snowball/pkg/stream"
)

func TestBufferWriteThenRead(t *testing.T) {
	w := stream.NewBuffer(stream.ModeWrite)
	n, err := w.Write([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, 11, w.Len())

	r := stream.NewBufferFromBytes(w.Bytes())
	out := make([]byte, 5)
	n, err = r.Read(out)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(out))
	assert.False(t, r.EOF())
}

func TestBufferReadToEOF(t *testing.T) {
	r := stream.NewBufferFromBytes([]byte("hi"))
	out := make([]byte, 2)
	n, err := r.Read(out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, r.EOF())

	n, err = r.Read(out)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestBufferWriteIsNoOpInReadMode(t *testing.T) {
	r := stream.NewBufferFromBytes([]byte("hi"))
	n, err := r.Write([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestBufferReadIsNoOpInWriteMode(t *testing.T) {
	w := stream.NewBuffer(stream.ModeWrite)
	out := make([]byte, 4)
	n, err := w.Read(out)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestBufferSeekStartAndCurrent(t *testing.T) {
	r := stream.NewBufferFromBytes([]byte("0123456789"))
	pos, err := r.Seek(3, stream.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pos)

	pos, err = r.Seek(2, stream.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(5), pos)

	out := make([]byte, 1)
	_, err = r.Read(out)
	require.NoError(t, err)
	assert.Equal(t, "5", string(out))
}

func TestBufferSeekNegativeErrors(t *testing.T) {
	r := stream.NewBufferFromBytes([]byte("abc"))
	_, err := r.Seek(-1, stream.SeekStart)
	require.ErrorIs(t, err, stream.ErrNegativeSeek)
}

func TestBufferWriteAtSeekOverwrites(t *testing.T) {
	w := stream.NewBuffer(stream.ModeWrite)
	_, err := w.Write([]byte("aaaa"))
	require.NoError(t, err)
	_, err = w.Seek(1, stream.SeekStart)
	require.NoError(t, err)
	_, err = w.Write([]byte("bb"))
	require.NoError(t, err)
	assert.Equal(t, "abba", string(w.Bytes()))
}

func TestBufferKind(t *testing.T) {
	assert.Equal(t, "buffer", stream.NewBuffer(stream.ModeWrite).Kind())
}
