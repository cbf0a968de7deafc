package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for asset loading operations.
// These follow OpenTelemetry semantic conventions where applicable.
// Asset-level keys use "asset." prefix, component-level keys use their own prefix.
const (
	// ========================================================================
	// Request attributes
	// ========================================================================
	AttrRequestID     = "request.id"
	AttrAssetKey      = "asset.key"      // Bundle-relative asset key
	AttrAssetTier     = "asset.tier"     // Priority tier (critical, high, medium, low)
	AttrAssetCategory = "asset.category" // Caller-supplied category label
	AttrAssetSize     = "asset.size"     // Decoded payload size in bytes
	AttrAssetFormat   = "asset.format"   // File extension (.png, .json, ...)
	AttrAssetDecoded  = "asset.decoded"  // Whether an image was decoded

	// ========================================================================
	// Scheduler attributes
	// ========================================================================
	AttrQueueDepth = "queue.depth"       // Pending requests in a tier queue
	AttrInFlight   = "loader.in_flight"  // Loads currently running
	AttrOutcome    = "loader.outcome"    // hit, miss, dedup, rejected

	// ========================================================================
	// Cache attributes
	// ========================================================================
	AttrCacheHit     = "cache.hit"
	AttrCacheEntries = "cache.entries"
	AttrCacheBytes   = "cache.bytes"
	AttrEvictReason  = "cache.evict_reason" // ttl, size, explicit

	// ========================================================================
	// Bundle attributes
	// ========================================================================
	AttrBundlePath   = "bundle.path"
	AttrBundleFormat = "bundle.format" // dir, badger
	AttrBundleAssets = "bundle.assets"
)

// Span names for operations.
// Format: <component>.<operation>
const (
	// ========================================================================
	// Loader spans
	// ========================================================================

	// Root span for a single background load
	SpanLoad = "loader.load"

	SpanLoadRequest = "loader.request"
	SpanDecode      = "loader.decode"
	SpanPreload     = "loader.preload"

	// ========================================================================
	// Cache spans
	// ========================================================================
	SpanCacheLookup = "cache.lookup"
	SpanCacheWrite  = "cache.write"
	SpanCacheSweep  = "cache.sweep"
	SpanCacheEvict  = "cache.evict"

	// ========================================================================
	// Bundle spans
	// ========================================================================
	SpanBundleRead = "bundle.read"
	SpanBundleStat = "bundle.stat"
	SpanBundleList = "bundle.list"
	SpanBundlePack = "bundle.pack"
)

// RequestID returns an attribute for the load request ID
func RequestID(id string) attribute.KeyValue {
	return attribute.String(AttrRequestID, id)
}

// AssetKey returns an attribute for the asset key
func AssetKey(key string) attribute.KeyValue {
	return attribute.String(AttrAssetKey, key)
}

// AssetTier returns an attribute for the priority tier name
func AssetTier(tier string) attribute.KeyValue {
	return attribute.String(AttrAssetTier, tier)
}

// AssetCategory returns an attribute for the asset category
func AssetCategory(category string) attribute.KeyValue {
	return attribute.String(AttrAssetCategory, category)
}

// AssetSize returns an attribute for the asset payload size
func AssetSize(size uint64) attribute.KeyValue {
	return attribute.Int64(AttrAssetSize, int64(size))
}

// AssetFormat returns an attribute for the asset file extension
func AssetFormat(ext string) attribute.KeyValue {
	return attribute.String(AttrAssetFormat, ext)
}

// AssetDecoded returns an attribute indicating image decode
func AssetDecoded(decoded bool) attribute.KeyValue {
	return attribute.Bool(AttrAssetDecoded, decoded)
}

// QueueDepth returns an attribute for a tier queue depth
func QueueDepth(depth int) attribute.KeyValue {
	return attribute.Int(AttrQueueDepth, depth)
}

// InFlight returns an attribute for the concurrent load count
func InFlight(n int) attribute.KeyValue {
	return attribute.Int(AttrInFlight, n)
}

// Outcome returns an attribute for the request outcome
func Outcome(outcome string) attribute.KeyValue {
	return attribute.String(AttrOutcome, outcome)
}

// CacheHit returns an attribute for cache hit indicator
func CacheHit(hit bool) attribute.KeyValue {
	return attribute.Bool(AttrCacheHit, hit)
}

// CacheEntries returns an attribute for the cache entry count
func CacheEntries(entries int) attribute.KeyValue {
	return attribute.Int(AttrCacheEntries, entries)
}

// CacheBytes returns an attribute for the cache size in bytes
func CacheBytes(bytes uint64) attribute.KeyValue {
	return attribute.Int64(AttrCacheBytes, int64(bytes))
}

// EvictReason returns an attribute for the eviction reason
func EvictReason(reason string) attribute.KeyValue {
	return attribute.String(AttrEvictReason, reason)
}

// BundlePath returns an attribute for the bundle path
func BundlePath(path string) attribute.KeyValue {
	return attribute.String(AttrBundlePath, path)
}

// BundleFormat returns an attribute for the bundle format
func BundleFormat(format string) attribute.KeyValue {
	return attribute.String(AttrBundleFormat, format)
}

// BundleAssets returns an attribute for the bundle asset count
func BundleAssets(count int) attribute.KeyValue {
	return attribute.Int(AttrBundleAssets, count)
}

// StartLoadSpan starts a span for a background asset load.
// This is a convenience function that sets common attributes.
func StartLoadSpan(ctx context.Context, key, tier string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		AssetKey(key),
		AssetTier(tier),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, SpanLoad, trace.WithAttributes(allAttrs...))
}

// StartCacheSpan starts a span for a cache operation.
func StartCacheSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, "cache."+operation, trace.WithAttributes(attrs...))
}

// StartBundleSpan starts a span for a bundle operation.
func StartBundleSpan(ctx context.Context, operation string, key string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	if key != "" {
		allAttrs = append(allAttrs, AssetKey(key))
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "bundle."+operation, trace.WithAttributes(allAttrs...))
}
