package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilium/snowball/pkg/config"
)

func TestWatchReturnsInitialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: WARN\n"), 0o644))

	cfg, stop, err := config.Watch(path, func(*config.Config) {})
	require.NoError(t, err)
	defer stop()

	assert.Equal(t, "WARN", cfg.Logging.Level)
}
