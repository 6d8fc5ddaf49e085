package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilium/snowball/internal/bytesize"
	"github.com/nilium/snowball/pkg/config"
)

func TestGetDefaultConfigIsValid(t *testing.T) {
	cfg := config.GetDefaultConfig()
	require.NoError(t, config.Validate(cfg))
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "memory", cfg.Catalog.Backend)
	assert.Equal(t, "local", cfg.Blobstore.Backend)
	assert.Equal(t, 64*bytesize.KiB, cfg.Buffer.InitialSize)
}

func TestLoadWithNoConfigFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `
logging:
  level: DEBUG
  format: json
  output: stderr
catalog:
  backend: badger
  badger:
    path: /var/lib/snowball/catalog
blobstore:
  backend: s3
  s3:
    bucket: my-bucket
buffer:
  initial_size: 1Mi
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "badger", cfg.Catalog.Backend)
	assert.Equal(t, "/var/lib/snowball/catalog", cfg.Catalog.Badger.Path)
	assert.Equal(t, "s3", cfg.Blobstore.Backend)
	assert.Equal(t, "my-bucket", cfg.Blobstore.S3.Bucket)
	assert.Equal(t, bytesize.ByteSize(1024*1024), cfg.Buffer.InitialSize)
}

func TestSaveConfigThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = "WARN"
	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "WARN", loaded.Logging.Level)
}
