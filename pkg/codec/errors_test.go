package codec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nilium/snowball/pkg/codec"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	var err error = &codec.Error{Code: codec.CodeWrongKind, Detail: "chunk 3"}
	assert.True(t, errors.Is(err, codec.ErrWrongKind))
	assert.False(t, errors.Is(err, codec.ErrBadName))
}

func TestErrorMessageWithoutDetail(t *testing.T) {
	assert.Equal(t, "chunk name does not match what was expected", codec.ErrBadName.Error())
}

func TestErrorMessageWithDetail(t *testing.T) {
	err := &codec.Error{Code: codec.CodeBadName, Detail: "wanted 7, got 9"}
	assert.Equal(t, "chunk name does not match what was expected: wanted 7, got 9", err.Error())
}

func TestCodeStringUnknown(t *testing.T) {
	var c codec.Code = 999
	assert.Equal(t, "unknown error", c.String())
}
