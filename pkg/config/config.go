// Package config assembles Config from CLI flags, environment variables,
// a YAML config file, and defaults, grounded on the teacher's
// pkg/config.Config: viper binds sources, mapstructure decodes into
// typed sub-structs with custom decode hooks for bytesize.ByteSize and
// time.Duration, go-playground/validator enforces struct-tag invariants.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nilium/snowball/internal/bytesize"
)

// Config is the top-level Snowball configuration.
//
// Configuration sources, in order of precedence:
//  1. Environment variables (SNOWBALL_*, highest priority)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// No CLI flags are bound into Config; cmd/snowball's flags (such as
// serve's --addr) are read by the commands directly.
type Config struct {
	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Telemetry controls OpenTelemetry distributed tracing.
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// Metrics controls the Prometheus metrics HTTP surface exposed by
	// `snowball serve`.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Buffer holds initial/growth buffer sizes. They are decoded and
	// defaulted, but no other package reads them: pkg/stream.Buffer and
	// the pkg/allocator default are not sized from this section.
	Buffer BufferConfig `mapstructure:"buffer" yaml:"buffer"`

	// Catalog selects and configures the pkg/catalog backend.
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`

	// Blobstore selects and configures the pkg/blobstore backend.
	Blobstore BlobstoreConfig `mapstructure:"blobstore" yaml:"blobstore"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized
	// to uppercase).
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format.
	// Valid values: text, json.
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written.
	// Valid values: stdout, stderr, or a file path.
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// TelemetryConfig controls OpenTelemetry distributed tracing. When
// enabled, spans around Writer.Close/Reader.Open and compound expansion
// are exported to an OTLP-compatible collector.
type TelemetryConfig struct {
	// Enabled controls whether distributed tracing is enabled.
	// Default: false (opt-in).
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the OTLP collector endpoint (host:port).
	// Default: "localhost:4317".
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Insecure controls whether to use an insecure (non-TLS) connection.
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`

	// SampleRate controls the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate"`
}

// MetricsConfig configures the Prometheus metrics HTTP server exposed by
// `snowball serve`. When Enabled is false, no metrics are collected
// (zero overhead).
type MetricsConfig struct {
	// Enabled controls whether metrics collection and the HTTP endpoint
	// are enabled.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Port is reported in `snowball serve`'s startup log when metrics are
	// enabled; the server listens on serve's --addr flag, not on Port.
	// Default: 9090 (filled only when Enabled is true).
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// BufferConfig holds initial/growth buffer sizes. No other package reads
// it; pkg/stream.Buffer and the pkg/allocator default are not sized from it.
type BufferConfig struct {
	// InitialSize is the capacity a new buffer is allocated with.
	// Supports human-readable formats: "64Ki", "1Mi".
	// Default: 64KiB.
	InitialSize bytesize.ByteSize `mapstructure:"initial_size" yaml:"initial_size,omitempty"`

	// GrowthSize is the increment a buffer grows by once InitialSize is
	// exhausted.
	// Default: 64KiB.
	GrowthSize bytesize.ByteSize `mapstructure:"growth_size" yaml:"growth_size,omitempty"`
}

// CatalogConfig selects and configures the pkg/catalog backend.
type CatalogConfig struct {
	// Backend selects the catalog implementation.
	// Valid values: memory, badger.
	Backend string `mapstructure:"backend" validate:"required,oneof=memory badger" yaml:"backend"`

	// Badger configures the badger backend. Only used when Backend is
	// "badger".
	Badger BadgerCatalogConfig `mapstructure:"badger" yaml:"badger"`
}

// BadgerCatalogConfig configures the badger-backed catalog.
type BadgerCatalogConfig struct {
	// Path is the directory badger stores its database files in. Filled
	// with a default by ApplyDefaults when the catalog backend is badger.
	Path string `mapstructure:"path" yaml:"path"`
}

// BlobstoreConfig selects and configures the pkg/blobstore backend.
type BlobstoreConfig struct {
	// Backend selects the blobstore implementation.
	// Valid values: local, s3.
	Backend string `mapstructure:"backend" validate:"required,oneof=local s3" yaml:"backend"`

	// Local configures the filesystem backend. Only used when Backend is
	// "local".
	Local LocalBlobstoreConfig `mapstructure:"local" yaml:"local"`

	// S3 configures the S3 backend. Only used when Backend is "s3".
	S3 S3BlobstoreConfig `mapstructure:"s3" yaml:"s3"`
}

// LocalBlobstoreConfig configures the filesystem-backed blobstore.
type LocalBlobstoreConfig struct {
	// BasePath is the directory blobs are stored under.
	BasePath string `mapstructure:"base_path" yaml:"base_path"`
}

// S3BlobstoreConfig configures the S3-backed blobstore.
type S3BlobstoreConfig struct {
	// Bucket is the S3 bucket name. Required when Blobstore.Backend is
	// "s3"; checked by Validate rather than a struct tag since the
	// condition spans two structs.
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// Region is the AWS region (optional, uses SDK default if empty).
	Region string `mapstructure:"region" yaml:"region,omitempty"`

	// Endpoint is the S3 endpoint URL (optional, for S3-compatible
	// services such as localstack or MinIO).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`

	// KeyPrefix is prepended to all blob keys.
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix,omitempty"`

	// ForcePathStyle forces path-style addressing, required for
	// localstack/MinIO.
	ForcePathStyle bool `mapstructure:"force_path_style" yaml:"force_path_style,omitempty"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (SNOWBALL_*)
//  2. Configuration file
//  3. Default values
//
// configPath may be empty, in which case the default location is used.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !found {
		return GetDefaultConfig(), nil
	}

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

// MustLoad loads configuration, returning a user-friendly error with
// setup instructions if no config file can be found.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf("no configuration file found at default location: %s\n\n"+
				"Create one with:\n"+
				"  snowball config init\n\n"+
				"Or specify a custom config file:\n"+
				"  snowball <command> --config /path/to/config.yaml",
				GetDefaultConfigPath())
		}
		configPath = GetDefaultConfigPath()
	} else if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path in YAML format, creating parent
// directories as needed. The file is written with 0600 permissions
// since it may carry bucket/endpoint configuration.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setupViper configures environment variable and config file sources.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("SNOWBALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	v.AddConfigPath(getConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// readConfigFile reads the configuration file if it exists, returning
// whether a file was found.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// configDecodeHooks composes the mapstructure decode hooks this package
// relies on for bytesize.ByteSize and time.Duration fields.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		durationDecodeHook(),
	)
}

// byteSizeDecodeHook converts strings and numbers to bytesize.ByteSize,
// enabling config files to use human-readable sizes like "64Ki", "1Gi".
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(bytesize.ByteSize(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return bytesize.ParseByteSize(v)
		case int:
			return bytesize.ByteSize(v), nil
		case int64:
			return bytesize.ByteSize(v), nil
		case uint64:
			return bytesize.ByteSize(v), nil
		case float64:
			return bytesize.ByteSize(v), nil
		default:
			return data, nil
		}
	}
}

// durationDecodeHook converts strings and numbers to time.Duration,
// enabling config files to use human-readable durations like "30s".
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory, preferring
// XDG_CONFIG_HOME, falling back to ~/.config, and finally "." if the
// home directory cannot be determined.
func getConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "snowball")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "snowball")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists reports whether a config file exists at the
// default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() string {
	return getConfigDir()
}
