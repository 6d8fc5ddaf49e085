// Package metrics provides optional Prometheus observability for codec,
// catalog, and blobstore operations.
//
// Metrics collection is entirely optional: InitRegistry must be called
// before any constructor in this package returns a non-nil value, and
// the package-level helpers (ObserveEncode, RecordError, ...) do nothing
// when given a nil CodecMetrics, so callers can pass a nil CodecMetrics
// through them unconditionally when metrics are disabled.
// Grounded on the teacher's pkg/metrics/cache.go enable-gate-plus-adapter
// shape: this package only holds the interface, the gate, and the
// indirection used to avoid an import cycle with pkg/metrics/prometheus,
// which holds the concrete implementation.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mu       sync.RWMutex
	enabled  bool
	registry *prometheus.Registry
)

// InitRegistry enables metrics collection and sets the Prometheus
// registry constructors register against. Passing a nil reg uses
// prometheus.NewRegistry().
func InitRegistry(reg *prometheus.Registry) {
	mu.Lock()
	defer mu.Unlock()
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	registry = reg
	enabled = true
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// GetRegistry returns the registry set by InitRegistry, or nil if
// metrics have not been enabled.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return registry
}

// CodecMetrics provides observability for codec encode/decode operations
// and catalog/blobstore activity driven by them. A nil CodecMetrics is
// valid everywhere in this interface's methods are called through the
// package-level helper functions below, which no-op on a nil receiver.
type CodecMetrics interface {
	// ObserveEncode records a root-header write (a full .snowball encode).
	ObserveEncode(duration time.Duration, bytes int64)

	// ObserveDecode records a root-header read (a full .snowball decode).
	ObserveDecode(duration time.Duration, bytes int64)

	// RecordChunkCount records the number of chunks written or read in a
	// single encode/decode operation.
	RecordChunkCount(count int)

	// RecordCompoundCount records the number of distinct compounds
	// resolved (after identity-dedup) in a single encode/decode
	// operation.
	RecordCompoundCount(count int)

	// RecordError increments a counter for the given codec.Code string.
	RecordError(code string)
}

// newPrometheusCodecMetrics is set by pkg/metrics/prometheus's init,
// avoiding an import cycle between this package and the concrete
// implementation.
var newPrometheusCodecMetrics func() CodecMetrics

// RegisterCodecMetricsConstructor registers the Prometheus-backed
// CodecMetrics constructor. Called from pkg/metrics/prometheus's init.
func RegisterCodecMetricsConstructor(constructor func() CodecMetrics) {
	mu.Lock()
	defer mu.Unlock()
	newPrometheusCodecMetrics = constructor
}

// NewCodecMetrics returns a Prometheus-backed CodecMetrics, or nil if
// metrics are not enabled. The nil value is a nil interface: calling its
// methods directly panics, while the package-level helper functions
// below accept it and do nothing.
func NewCodecMetrics() CodecMetrics {
	if !IsEnabled() {
		return nil
	}
	mu.RLock()
	ctor := newPrometheusCodecMetrics
	mu.RUnlock()
	if ctor == nil {
		return nil
	}
	return ctor()
}

// ObserveEncode records a root-header write if m is non-nil.
func ObserveEncode(m CodecMetrics, duration time.Duration, bytes int64) {
	if m != nil {
		m.ObserveEncode(duration, bytes)
	}
}

// ObserveDecode records a root-header read if m is non-nil.
func ObserveDecode(m CodecMetrics, duration time.Duration, bytes int64) {
	if m != nil {
		m.ObserveDecode(duration, bytes)
	}
}

// RecordChunkCount records a chunk count if m is non-nil.
func RecordChunkCount(m CodecMetrics, count int) {
	if m != nil {
		m.RecordChunkCount(count)
	}
}

// RecordCompoundCount records a compound count if m is non-nil.
func RecordCompoundCount(m CodecMetrics, count int) {
	if m != nil {
		m.RecordCompoundCount(count)
	}
}

// RecordError increments an error counter if m is non-nil.
func RecordError(m CodecMetrics, code string) {
	if m != nil {
		m.RecordError(code)
	}
}
