package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements for log aggregation and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Codec Session & Operation
	// ========================================================================
	KeySessionID     = "session_id"     // codec.Writer/Reader session identifier
	KeyOperation     = "operation"      // chunk name currently being matched
	KeyStreamKind    = "stream_kind"    // "file", "buffer", "null"
	KeyChunkKind     = "chunk_kind"     // chunk kind tag (frame.Kind)
	KeyChunkName     = "chunk_name"     // caller-chosen chunk name tag
	KeyCompoundIndex = "compound_index" // 1-based compound index
	KeySize          = "size"           // chunk/payload size in bytes
	KeyOffset        = "offset"         // byte offset within a stream
	KeyCount         = "count"          // array element count

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // operation duration in milliseconds
	KeyError      = "error"       // error message
	KeyErrorCode  = "error_code"  // codec.ErrorCode numeric value

	// ========================================================================
	// Blobstore / Catalog
	// ========================================================================
	KeyPath      = "path"       // local filesystem path
	KeyBucket    = "bucket"     // S3 bucket name
	KeyKey       = "key"        // object key in cloud storage
	KeyCatalogID = "catalog_id" // catalog entry identifier
	KeyAttempt   = "attempt"    // retry attempt number
)

// ============================================================================
// Field constructors for type safety
// These functions provide type-safe construction of slog.Attr values.
// ============================================================================

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// SessionID returns a slog.Attr for the codec session identifier
func SessionID(id string) slog.Attr {
	return slog.String(KeySessionID, id)
}

// Operation returns a slog.Attr for the chunk name being matched
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// StreamKind returns a slog.Attr for the underlying stream kind
func StreamKind(kind string) slog.Attr {
	return slog.String(KeyStreamKind, kind)
}

// ChunkKind returns a slog.Attr for a chunk kind tag
func ChunkKind(kind uint32) slog.Attr {
	return slog.Uint64(KeyChunkKind, uint64(kind))
}

// ChunkName returns a slog.Attr for a caller-chosen chunk name tag
func ChunkName(name uint32) slog.Attr {
	return slog.Uint64(KeyChunkName, uint64(name))
}

// CompoundIndex returns a slog.Attr for a 1-based compound index
func CompoundIndex(index uint32) slog.Attr {
	return slog.Uint64(KeyCompoundIndex, uint64(index))
}

// Size returns a slog.Attr for a chunk/payload size in bytes
func Size(s uint32) slog.Attr {
	return slog.Uint64(KeySize, uint64(s))
}

// Offset returns a slog.Attr for a byte offset within a stream
func Offset(off int64) slog.Attr {
	return slog.Int64(KeyOffset, off)
}

// Count returns a slog.Attr for an array element count
func Count(c uint32) slog.Attr {
	return slog.Uint64(KeyCount, uint64(c))
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for a numeric error code
func ErrorCode(code int) slog.Attr {
	return slog.Int(KeyErrorCode, code)
}

// Path returns a slog.Attr for a local filesystem path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Bucket returns a slog.Attr for an S3 bucket name
func Bucket(name string) slog.Attr {
	return slog.String(KeyBucket, name)
}

// Key returns a slog.Attr for an object key in cloud storage
func Key(k string) slog.Attr {
	return slog.String(KeyKey, k)
}

// CatalogID returns a slog.Attr for a catalog entry identifier
func CatalogID(id string) slog.Attr {
	return slog.String(KeyCatalogID, id)
}

// Attempt returns a slog.Attr for a retry attempt number
func Attempt(n int) slog.Attr {
	return slog.Int(KeyAttempt, n)
}
