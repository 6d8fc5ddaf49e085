package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds session-scoped logging context for a codec session.
type LogContext struct {
	TraceID       string    // OpenTelemetry trace ID
	SpanID        string    // OpenTelemetry span ID
	SessionID     string    // codec.Writer/Reader session identifier
	Operation     string    // chunk name currently being matched
	StreamKind    string    // "file", "buffer", "null"
	CompoundIndex uint32    // compound index currently being expanded, 0 if none
	StartTime     time.Time // for duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext for the given session.
func NewLogContext(sessionID string) *LogContext {
	return &LogContext{
		SessionID: sessionID,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	return &LogContext{
		TraceID:       lc.TraceID,
		SpanID:        lc.SpanID,
		SessionID:     lc.SessionID,
		Operation:     lc.Operation,
		StreamKind:    lc.StreamKind,
		CompoundIndex: lc.CompoundIndex,
		StartTime:     lc.StartTime,
	}
}

// WithOperation returns a copy with the operation (chunk name) set
func (lc *LogContext) WithOperation(operation string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Operation = operation
	}
	return clone
}

// WithStreamKind returns a copy with the stream kind set
func (lc *LogContext) WithStreamKind(kind string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.StreamKind = kind
	}
	return clone
}

// WithCompound returns a copy with the compound index set
func (lc *LogContext) WithCompound(index uint32) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.CompoundIndex = index
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
		clone.SpanID = spanID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
