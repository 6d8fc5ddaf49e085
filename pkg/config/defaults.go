package config

import "github.com/nilium/snowball/internal/bytesize"

// ApplyDefaults fills unspecified configuration fields with sensible
// defaults, mirroring the teacher's per-section apply*Defaults style.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)
	applyBufferDefaults(&cfg.Buffer)
	applyCatalogDefaults(&cfg.Catalog)
	applyBlobstoreDefaults(&cfg.Blobstore)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Enabled && cfg.Port == 0 {
		cfg.Port = 9090
	}
}

func applyBufferDefaults(cfg *BufferConfig) {
	if cfg.InitialSize == 0 {
		cfg.InitialSize = 64 * bytesize.KiB
	}
	if cfg.GrowthSize == 0 {
		cfg.GrowthSize = 64 * bytesize.KiB
	}
}

func applyCatalogDefaults(cfg *CatalogConfig) {
	if cfg.Backend == "" {
		cfg.Backend = "memory"
	}
	if cfg.Backend == "badger" && cfg.Badger.Path == "" {
		cfg.Badger.Path = "/tmp/snowball-catalog"
	}
}

func applyBlobstoreDefaults(cfg *BlobstoreConfig) {
	if cfg.Backend == "" {
		cfg.Backend = "local"
	}
	if cfg.Backend == "local" && cfg.Local.BasePath == "" {
		cfg.Local.BasePath = "/tmp/snowball-blobs"
	}
	if cfg.Backend == "s3" && cfg.S3.KeyPrefix == "" {
		cfg.S3.KeyPrefix = "snowball/"
	}
}

// GetDefaultConfig returns a Config with all default values applied,
// used when no config file is found and for `snowball config init`.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Catalog:   CatalogConfig{Backend: "memory"},
		Blobstore: BlobstoreConfig{Backend: "local"},
	}
	ApplyDefaults(cfg)
	return cfg
}
