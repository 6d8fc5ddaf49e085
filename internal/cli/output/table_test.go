package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableData(t *testing.T) {
	td := NewTableData("ID", "SIZE")
	td.AddRow("a1", "10")
	td.AddRow("b2", "20")

	assert.Equal(t, []string{"ID", "SIZE"}, td.Headers())
	assert.Equal(t, [][]string{{"a1", "10"}, {"b2", "20"}}, td.Rows())
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	td := NewTableData("ID", "SIZE")
	td.AddRow("a1", "10")

	require.NoError(t, PrintTable(&buf, td))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "SIZE")
	assert.Contains(t, out, "a1")
	assert.Contains(t, out, "10")
}

func TestSimpleTable(t *testing.T) {
	var buf bytes.Buffer
	pairs := [][2]string{
		{"Name", "snowball"},
		{"Version", "1.0.0"},
	}

	require.NoError(t, SimpleTable(&buf, pairs))

	out := buf.String()
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "snowball")
	assert.Contains(t, out, "Version")
	assert.Contains(t, out, "1.0.0")
}
