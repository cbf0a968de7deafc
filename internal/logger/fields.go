package logger

import "log/slog"

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so logs can be
// aggregated and queried by field.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Load Requests
	// ========================================================================
	KeyRequestID = "request_id" // Load request identifier
	KeyOperation = "operation"  // Operation name: request, preload, dispatch, sweep, ...
	KeyAsset     = "asset"      // Asset key within the bundle
	KeyTier      = "tier"       // Priority tier: critical, high, medium, low
	KeyCategory  = "category"   // Caller-supplied asset category label
	KeySize      = "size"       // Payload size in bytes
	KeyCount     = "count"      // Generic count

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeySource     = "source"      // Data source: cache, bundle

	// ========================================================================
	// Scheduler
	// ========================================================================
	KeyQueueDepth = "queue_depth" // Pending requests in a tier queue
	KeyInFlight   = "in_flight"   // Dispatched loads not yet completed

	// ========================================================================
	// Cache
	// ========================================================================
	KeyCacheHit      = "cache_hit"      // Cache hit indicator
	KeyCacheSize     = "cache_size"     // Current cache size in bytes
	KeyCacheCapacity = "cache_capacity" // Maximum cache capacity in bytes
	KeyEvicted       = "evicted"        // Number of entries evicted
	KeyEntries       = "entries"        // Number of cached entries
	KeyReason        = "reason"         // Eviction reason: ttl, size

	// ========================================================================
	// Bundle
	// ========================================================================
	KeyBundle = "bundle" // Bundle path
	KeyFormat = "format" // Bundle format: dir, badger
	KeyPath   = "path"   // File or directory path
)

// ============================================================================
// Field constructors for type safety
// ============================================================================

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// RequestID returns a slog.Attr for a load request identifier
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// Operation returns a slog.Attr for an operation name
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Asset returns a slog.Attr for an asset key
func Asset(key string) slog.Attr {
	return slog.String(KeyAsset, key)
}

// Tier returns a slog.Attr for a priority tier
func Tier(tier string) slog.Attr {
	return slog.String(KeyTier, tier)
}

// Category returns a slog.Attr for an asset category
func Category(c string) slog.Attr {
	return slog.String(KeyCategory, c)
}

// Size returns a slog.Attr for a payload size
func Size(s uint64) slog.Attr {
	return slog.Uint64(KeySize, s)
}

// Count returns a slog.Attr for a generic count
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
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

// Source returns a slog.Attr for a data source
func Source(src string) slog.Attr {
	return slog.String(KeySource, src)
}

// QueueDepth returns a slog.Attr for a tier queue depth
func QueueDepth(n int) slog.Attr {
	return slog.Int(KeyQueueDepth, n)
}

// InFlight returns a slog.Attr for the in-flight load count
func InFlight(n int) slog.Attr {
	return slog.Int(KeyInFlight, n)
}

// CacheHit returns a slog.Attr for cache hit indicator
func CacheHit(hit bool) slog.Attr {
	return slog.Bool(KeyCacheHit, hit)
}

// CacheSize returns a slog.Attr for current cache size
func CacheSize(size int64) slog.Attr {
	return slog.Int64(KeyCacheSize, size)
}

// CacheCapacity returns a slog.Attr for maximum cache capacity
func CacheCapacity(capacity int64) slog.Attr {
	return slog.Int64(KeyCacheCapacity, capacity)
}

// Evicted returns a slog.Attr for number of entries evicted
func Evicted(n int) slog.Attr {
	return slog.Int(KeyEvicted, n)
}

// Entries returns a slog.Attr for number of cached entries
func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}

// Reason returns a slog.Attr for an eviction reason
func Reason(r string) slog.Attr {
	return slog.String(KeyReason, r)
}

// Bundle returns a slog.Attr for a bundle path
func Bundle(path string) slog.Attr {
	return slog.String(KeyBundle, path)
}

// Format returns a slog.Attr for a bundle format
func Format(f string) slog.Attr {
	return slog.String(KeyFormat, f)
}

// Path returns a slog.Attr for a file or directory path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}
