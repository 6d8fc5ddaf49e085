package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for codec and storage operations.
// These follow OpenTelemetry semantic conventions where applicable.
const (
	// ========================================================================
	// Session attributes
	// ========================================================================
	AttrSessionID  = "snowball.session_id"
	AttrOperation  = "snowball.operation"   // encode, decode, compound.expand
	AttrStreamKind = "snowball.stream_kind" // file, buffer, null

	// ========================================================================
	// Chunk/compound attributes
	// ========================================================================
	AttrChunkKind     = "snowball.chunk_kind"
	AttrChunkName     = "snowball.chunk_name"
	AttrCompoundIndex = "snowball.compound_index"
	AttrCompoundCount = "snowball.compound_count"
	AttrArrayLength   = "snowball.array_length"
	AttrSize          = "snowball.size"
	AttrOffset        = "snowball.offset"

	// ========================================================================
	// Error/status attributes
	// ========================================================================
	AttrErrorCode = "snowball.error_code"

	// ========================================================================
	// Catalog attributes
	// ========================================================================
	AttrCatalogID = "catalog.id"
	AttrCatalogOp = "catalog.operation"

	// ========================================================================
	// Storage backend attributes
	// ========================================================================
	AttrStoreName = "store.name"
	AttrStoreType = "store.type"
	AttrBucket    = "storage.bucket"
	AttrKey       = "storage.key"
	AttrRegion    = "storage.region"
	AttrPath      = "storage.path"
)

// Span names for operations.
// Format: snowball.<operation> for codec spans, <component>.<operation> for
// supporting infrastructure.
const (
	SpanEncode          = "snowball.encode"
	SpanDecode          = "snowball.decode"
	SpanCompoundExpand  = "snowball.compound.expand"
	SpanWriterClose     = "snowball.writer.close"
	SpanReaderOpen      = "snowball.reader.open"
	SpanCatalogPut      = "catalog.put"
	SpanCatalogGet      = "catalog.get"
	SpanCatalogList     = "catalog.list"
	SpanBlobstoreOpen   = "blobstore.open"
	SpanBlobstoreCreate = "blobstore.create"
)

// SessionID returns an attribute for the codec session identifier.
func SessionID(id string) attribute.KeyValue {
	return attribute.String(AttrSessionID, id)
}

// Operation returns an attribute for the operation name.
func Operation(op string) attribute.KeyValue {
	return attribute.String(AttrOperation, op)
}

// StreamKind returns an attribute for the underlying stream kind.
func StreamKind(kind string) attribute.KeyValue {
	return attribute.String(AttrStreamKind, kind)
}

// ChunkKind returns an attribute for a chunk kind tag.
func ChunkKind(kind uint32) attribute.KeyValue {
	return attribute.Int64(AttrChunkKind, int64(kind))
}

// ChunkName returns an attribute for a caller-chosen chunk name tag.
func ChunkName(name uint32) attribute.KeyValue {
	return attribute.Int64(AttrChunkName, int64(name))
}

// CompoundIndex returns an attribute for a 1-based compound index.
func CompoundIndex(index uint32) attribute.KeyValue {
	return attribute.Int64(AttrCompoundIndex, int64(index))
}

// CompoundCount returns an attribute for the total compound count in a session.
func CompoundCount(count int) attribute.KeyValue {
	return attribute.Int(AttrCompoundCount, count)
}

// ArrayLength returns an attribute for an array chunk's element count.
func ArrayLength(n uint32) attribute.KeyValue {
	return attribute.Int64(AttrArrayLength, int64(n))
}

// Size returns an attribute for a chunk or payload size in bytes.
func Size(n uint32) attribute.KeyValue {
	return attribute.Int64(AttrSize, int64(n))
}

// Offset returns an attribute for a byte offset within a stream.
func Offset(off int64) attribute.KeyValue {
	return attribute.Int64(AttrOffset, off)
}

// ErrorCode returns an attribute for a codec error code.
func ErrorCode(code int) attribute.KeyValue {
	return attribute.Int(AttrErrorCode, code)
}

// CatalogID returns an attribute for a catalog entry identifier.
func CatalogID(id string) attribute.KeyValue {
	return attribute.String(AttrCatalogID, id)
}

// CatalogOp returns an attribute for the catalog operation name.
func CatalogOp(op string) attribute.KeyValue {
	return attribute.String(AttrCatalogOp, op)
}

// StoreName returns an attribute for a blobstore backend's configured name.
func StoreName(name string) attribute.KeyValue {
	return attribute.String(AttrStoreName, name)
}

// StoreType returns an attribute for a blobstore backend type (local, s3).
func StoreType(t string) attribute.KeyValue {
	return attribute.String(AttrStoreType, t)
}

// Bucket returns an attribute for an S3 bucket name.
func Bucket(name string) attribute.KeyValue {
	return attribute.String(AttrBucket, name)
}

// StorageKey returns an attribute for an S3 object key.
func StorageKey(key string) attribute.KeyValue {
	return attribute.String(AttrKey, key)
}

// Region returns an attribute for a cloud region.
func Region(region string) attribute.KeyValue {
	return attribute.String(AttrRegion, region)
}

// Path returns an attribute for a local filesystem path.
func Path(path string) attribute.KeyValue {
	return attribute.String(AttrPath, path)
}

// StartCodecSpan starts a span for a Writer/Reader session-level operation.
// This is a convenience function that sets the session and operation attributes.
func StartCodecSpan(ctx context.Context, spanName, sessionID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		SessionID(sessionID),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, spanName, trace.WithAttributes(allAttrs...))
}

// StartCompoundSpan starts a span for expanding a single compound.
func StartCompoundSpan(ctx context.Context, sessionID string, index uint32) (context.Context, trace.Span) {
	return StartSpan(ctx, SpanCompoundExpand, trace.WithAttributes(
		SessionID(sessionID),
		CompoundIndex(index),
	))
}

// StartCatalogSpan starts a span for a catalog store operation.
func StartCatalogSpan(ctx context.Context, operation, catalogID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		CatalogOp(operation),
	}
	if catalogID != "" {
		allAttrs = append(allAttrs, CatalogID(catalogID))
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "catalog."+operation, trace.WithAttributes(allAttrs...))
}

// StartBlobstoreSpan starts a span for a blobstore backend operation.
func StartBlobstoreSpan(ctx context.Context, operation, storeType string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		StoreType(storeType),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "blobstore."+operation, trace.WithAttributes(allAttrs...))
}
