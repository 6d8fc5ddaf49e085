package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{"name": "root", "size": 42}

	require.NoError(t, PrintJSON(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "\"name\": \"root\"")
	assert.Contains(t, out, "\"size\": 42")
}
