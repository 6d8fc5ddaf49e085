package metrics_test

import (
	"testing"
	"time"

	"github.com/nilium/snowball/pkg/metrics"
)

type recordingMetrics struct {
	encodes, decodes  int
	chunks, compounds int
	lastErrorCode     string
}

func (r *recordingMetrics) ObserveEncode(time.Duration, int64) { r.encodes++ }
func (r *recordingMetrics) ObserveDecode(time.Duration, int64) { r.decodes++ }
func (r *recordingMetrics) RecordChunkCount(n int)             { r.chunks = n }
func (r *recordingMetrics) RecordCompoundCount(n int)          { r.compounds = n }
func (r *recordingMetrics) RecordError(code string)            { r.lastErrorCode = code }

func TestHelpersNoOpOnNil(t *testing.T) {
	// These must not panic when called with a nil CodecMetrics.
	metrics.ObserveEncode(nil, time.Millisecond, 128)
	metrics.ObserveDecode(nil, time.Millisecond, 128)
	metrics.RecordChunkCount(nil, 3)
	metrics.RecordCompoundCount(nil, 2)
	metrics.RecordError(nil, "E_TRUNCATED")
}

func TestHelpersDelegateToNonNil(t *testing.T) {
	r := &recordingMetrics{}
	metrics.ObserveEncode(r, time.Millisecond, 128)
	metrics.ObserveDecode(r, time.Millisecond, 128)
	metrics.RecordChunkCount(r, 3)
	metrics.RecordCompoundCount(r, 2)
	metrics.RecordError(r, "E_TRUNCATED")

	if r.encodes != 1 || r.decodes != 1 {
		t.Fatalf("encodes=%d decodes=%d, want 1 each", r.encodes, r.decodes)
	}
	if r.chunks != 3 || r.compounds != 2 {
		t.Fatalf("chunks=%d compounds=%d, want 3 and 2", r.chunks, r.compounds)
	}
	if r.lastErrorCode != "E_TRUNCATED" {
		t.Fatalf("lastErrorCode=%q, want E_TRUNCATED", r.lastErrorCode)
	}
}

func TestNewCodecMetricsNilWhenDisabled(t *testing.T) {
	if metrics.IsEnabled() {
		t.Skip("metrics enabled by an earlier test in this process")
	}
	if m := metrics.NewCodecMetrics(); m != nil {
		t.Fatalf("NewCodecMetrics() = %v, want nil when disabled", m)
	}
}
