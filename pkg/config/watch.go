package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch loads configuration from configPath and re-invokes onChange with
// a freshly validated Config every time the file changes on disk, using
// viper's fsnotify-backed WatchConfig. It returns the initial Config and
// a stop function. The stop function does nothing: viper's watcher keeps
// running until the process exits.
//
// Intended for the `serve` command, which needs to react to an edited
// config file without a restart.
func Watch(configPath string, onChange func(*Config)) (*Config, func(), error) {
	v := viper.New()
	setupViper(v, configPath)

	if _, err := readConfigFile(v); err != nil {
		return nil, nil, err
	}

	load := func() (*Config, error) {
		var cfg Config
		if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
		ApplyDefaults(&cfg)
		if err := Validate(&cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
		return &cfg, nil
	}

	initial, err := load()
	if err != nil {
		return nil, nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if cfg, err := load(); err == nil && onChange != nil {
			onChange(cfg)
		}
	})
	v.WatchConfig()

	stop := func() {}
	return initial, stop, nil
}
