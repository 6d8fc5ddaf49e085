package catalog_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilium/snowball/cmd/snowball/commands"
	pkgconfig "github.com/nilium/snowball/pkg/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := commands.GetRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs(append([]string{"catalog"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func memoryConfigPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := pkgconfig.GetDefaultConfig()
	require.NoError(t, pkgconfig.SaveConfig(cfg, path))
	return path
}

func TestCatalogListEmpty(t *testing.T) {
	path := memoryConfigPath(t)

	out, err := execute(t, "list", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
}

func TestCatalogGetUnknownIDFails(t *testing.T) {
	path := memoryConfigPath(t)

	_, err := execute(t, "get", "nonexistent", "--config", path)
	assert.Error(t, err)
}

func TestCatalogDeleteUnknownIDFails(t *testing.T) {
	path := memoryConfigPath(t)

	_, err := execute(t, "delete", "nonexistent", "--config", path)
	assert.Error(t, err)
}
