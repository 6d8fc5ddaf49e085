package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nilium/snowball/internal/bytesize"
	"github.com/nilium/snowball/pkg/config"
)

func TestApplyDefaultsFillsBadgerPathWhenSelected(t *testing.T) {
	cfg := &config.Config{Catalog: config.CatalogConfig{Backend: "badger"}}
	config.ApplyDefaults(cfg)
	assert.NotEmpty(t, cfg.Catalog.Badger.Path)
}

func TestApplyDefaultsLeavesBadgerPathAloneForMemory(t *testing.T) {
	cfg := &config.Config{Catalog: config.CatalogConfig{Backend: "memory"}}
	config.ApplyDefaults(cfg)
	assert.Empty(t, cfg.Catalog.Badger.Path)
}

func TestApplyDefaultsFillsBufferSizes(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	assert.Equal(t, 64*bytesize.KiB, cfg.Buffer.InitialSize)
	assert.Equal(t, 64*bytesize.KiB, cfg.Buffer.GrowthSize)
}

func TestApplyDefaultsDoesNotOverrideExplicitValues(t *testing.T) {
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "ERROR"}}
	config.ApplyDefaults(cfg)
	assert.Equal(t, "ERROR", cfg.Logging.Level)
}
