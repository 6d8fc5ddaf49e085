package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nilium/snowball/internal/logger"
	"github.com/nilium/snowball/internal/telemetry"
	"github.com/nilium/snowball/pkg/api"
	"github.com/nilium/snowball/pkg/catalog"
	"github.com/nilium/snowball/pkg/catalog/badger"
	"github.com/nilium/snowball/pkg/catalog/memory"
	pkgconfig "github.com/nilium/snowball/pkg/config"
	"github.com/nilium/snowball/pkg/metrics"

	// Registers the Prometheus-backed CodecMetrics constructor.
	_ "github.com/nilium/snowball/pkg/metrics/prometheus"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the snowball HTTP server",
	Long: `Run an HTTP server exposing health probes and, if enabled, a
Prometheus /metrics endpoint, backed by the configured catalog store.

The configuration file is watched for changes; edits to the catalog
backend take effect on the next request after a successful reload.

Examples:
  # Serve with the default config
  snowball serve

  # Serve on a custom bind address
  snowball serve --addr :9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
}

func openCatalogStore(cfg *pkgconfig.Config) (catalog.Store, error) {
	switch cfg.Catalog.Backend {
	case "badger":
		return badger.Open(cfg.Catalog.Badger.Path)
	case "memory", "":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown catalog backend: %q", cfg.Catalog.Backend)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()

	var (
		store   catalog.Store
		storeMu sync.Mutex
	)

	onChange := func(cfg *pkgconfig.Config) {
		storeMu.Lock()
		defer storeMu.Unlock()

		next, err := openCatalogStore(cfg)
		if err != nil {
			logger.Error("failed to reload catalog backend", "error", err)
			return
		}
		if store != nil {
			_ = store.Close()
		}
		store = next
		logger.Info("configuration reloaded", "catalog_backend", cfg.Catalog.Backend)
	}

	cfg, stop, err := pkgconfig.Watch(configPath, onChange)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	defer stop()

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx := context.Background()
	telemetryShutdown, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "snowball",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	if cfg.Metrics.Enabled {
		metrics.InitRegistry(nil)
		logger.Info("metrics enabled", "port", cfg.Metrics.Port)
	}

	store, err = openCatalogStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open catalog store: %w", err)
	}
	defer func() { _ = store.Close() }()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storeMu.Lock()
		current := store
		storeMu.Unlock()
		api.NewRouter(current).ServeHTTP(w, r)
	})

	srv := &http.Server{
		Addr:    serveAddr,
		Handler: handler,
	}

	serverErr := make(chan error, 1)
	go func() { serverErr <- srv.ListenAndServe() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("snowball server listening", "addr", serveAddr)

	select {
	case <-sigCh:
		signal.Stop(sigCh)
		logger.Info("shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
