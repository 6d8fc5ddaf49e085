package stream_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilium/snowball/pkg/stream"
)

func TestFileWriteReadSeek(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.snb")

	wf, err := stream.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
	require.NoError(t, err)
	n, err := wf.Write([]byte("snowball"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	require.NoError(t, wf.Close())

	rf, err := stream.OpenFile(path, os.O_RDONLY, 0)
	require.NoError(t, err)
	defer rf.Close()

	out := make([]byte, 4)
	n, err = rf.Read(out)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "snow", string(out))
	assert.False(t, rf.EOF())

	pos, err := rf.Seek(0, stream.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)

	pos, err = rf.Seek(-4, stream.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)

	full := make([]byte, 8)
	n, err = rf.Read(full)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "snowball", string(full))

	_, err = rf.Read(out)
	require.NoError(t, err)
	assert.True(t, rf.EOF())

	assert.Equal(t, "file", rf.Kind())
}
