// Package prometheus implements metrics.CodecMetrics with real
// Prometheus collectors, grounded on the teacher's
// pkg/metrics/prometheus/cache.go (same promauto.With(reg) construction
// style, same nil-receiver-safe methods).
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nilium/snowball/pkg/metrics"
)

func init() {
	metrics.RegisterCodecMetricsConstructor(NewCodecMetrics)
}

// codecMetrics is the Prometheus implementation of metrics.CodecMetrics.
type codecMetrics struct {
	encodeOperations prometheus.Counter
	encodeDuration   prometheus.Histogram
	encodeBytes      prometheus.Histogram
	decodeOperations prometheus.Counter
	decodeDuration   prometheus.Histogram
	decodeBytes      prometheus.Histogram
	chunkCount       prometheus.Histogram
	compoundCount    prometheus.Histogram
	errors           *prometheus.CounterVec
}

// NewCodecMetrics creates a new Prometheus-backed metrics.CodecMetrics.
//
// Returns nil if metrics are not enabled (metrics.InitRegistry not
// called).
func NewCodecMetrics() metrics.CodecMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	durationBuckets := []float64{
		0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000, 5000,
	}
	byteBuckets := []float64{
		4096, 32768, 131072, 524288, 1048576, 4194304, 16777216, 67108864,
	}

	return &codecMetrics{
		encodeOperations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "snowball_encode_operations_total",
			Help: "Total number of .snowball encode operations.",
		}),
		encodeDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "snowball_encode_duration_milliseconds",
			Help:    "Duration of .snowball encode operations in milliseconds.",
			Buckets: durationBuckets,
		}),
		encodeBytes: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "snowball_encode_bytes",
			Help:    "Distribution of bytes written per encode operation.",
			Buckets: byteBuckets,
		}),
		decodeOperations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "snowball_decode_operations_total",
			Help: "Total number of .snowball decode operations.",
		}),
		decodeDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "snowball_decode_duration_milliseconds",
			Help:    "Duration of .snowball decode operations in milliseconds.",
			Buckets: durationBuckets,
		}),
		decodeBytes: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "snowball_decode_bytes",
			Help:    "Distribution of bytes read per decode operation.",
			Buckets: byteBuckets,
		}),
		chunkCount: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "snowball_chunk_count",
			Help:    "Number of chunks per .snowball encode/decode operation.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
		}),
		compoundCount: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "snowball_compound_count",
			Help:    "Number of distinct compounds resolved per operation.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 1024},
		}),
		errors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "snowball_codec_errors_total",
			Help: "Total number of codec errors by code.",
		}, []string{"code"}),
	}
}

func (m *codecMetrics) ObserveEncode(duration time.Duration, bytes int64) {
	if m == nil {
		return
	}
	m.encodeOperations.Inc()
	m.encodeDuration.Observe(float64(duration.Milliseconds()))
	if bytes > 0 {
		m.encodeBytes.Observe(float64(bytes))
	}
}

func (m *codecMetrics) ObserveDecode(duration time.Duration, bytes int64) {
	if m == nil {
		return
	}
	m.decodeOperations.Inc()
	m.decodeDuration.Observe(float64(duration.Milliseconds()))
	if bytes > 0 {
		m.decodeBytes.Observe(float64(bytes))
	}
}

func (m *codecMetrics) RecordChunkCount(count int) {
	if m == nil {
		return
	}
	m.chunkCount.Observe(float64(count))
}

func (m *codecMetrics) RecordCompoundCount(count int) {
	if m == nil {
		return
	}
	m.compoundCount.Observe(float64(count))
}

func (m *codecMetrics) RecordError(code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(code).Inc()
}

var _ metrics.CodecMetrics = (*codecMetrics)(nil)
