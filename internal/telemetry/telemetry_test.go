package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "assetloader", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.ServiceVersion)
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SampleRate)
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Enabled = false

	shutdown, err := Init(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	// Should be able to call shutdown without error
	err = shutdown(ctx)
	assert.NoError(t, err)

	// Should not be enabled
	assert.False(t, IsEnabled())
}

func TestTracerReturnsNoOp(t *testing.T) {
	// Reset state
	tracer = nil
	enabled = false

	// Without initialization, should return no-op tracer
	tr := Tracer()
	require.NotNil(t, tr)
}

func TestStartSpan(t *testing.T) {
	ctx := context.Background()

	// Even without initialization, StartSpan should work (no-op)
	newCtx, span := StartSpan(ctx, "test.operation")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)

	// Should be able to end the span
	span.End()
}

func TestSpanFromContext(t *testing.T) {
	ctx := context.Background()

	// Should return a span even without active span
	span := SpanFromContext(ctx)
	require.NotNil(t, span)
}

func TestAddEvent(t *testing.T) {
	ctx := context.Background()

	// Should not panic with no active span
	require.NotPanics(t, func() {
		AddEvent(ctx, "test.event")
	})
}

func TestRecordError(t *testing.T) {
	ctx := context.Background()

	// Should not panic with nil error
	require.NotPanics(t, func() {
		RecordError(ctx, nil)
	})

	// Should not panic with error
	require.NotPanics(t, func() {
		RecordError(ctx, errors.New("test error"))
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	// Should not panic
	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Ok, "success")
	})

	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Error, "failed")
	})
}

func TestSetAttributes(t *testing.T) {
	ctx := context.Background()

	// Should not panic
	require.NotPanics(t, func() {
		SetAttributes(ctx, AssetKey("textures/hero.png"))
	})
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()

	// Without active span, should return empty string
	traceID := TraceID(ctx)
	assert.Equal(t, "", traceID)
}

func TestSpanID(t *testing.T) {
	ctx := context.Background()

	// Without active span, should return empty string
	spanID := SpanID(ctx)
	assert.Equal(t, "", spanID)
}

func TestAttributeHelpers(t *testing.T) {
	t.Run("RequestID", func(t *testing.T) {
		attr := RequestID("req-123")
		assert.Equal(t, AttrRequestID, string(attr.Key))
		assert.Equal(t, "req-123", attr.Value.AsString())
	})

	t.Run("AssetKey", func(t *testing.T) {
		attr := AssetKey("textures/hero.png")
		assert.Equal(t, AttrAssetKey, string(attr.Key))
		assert.Equal(t, "textures/hero.png", attr.Value.AsString())
	})

	t.Run("AssetTier", func(t *testing.T) {
		attr := AssetTier("critical")
		assert.Equal(t, AttrAssetTier, string(attr.Key))
		assert.Equal(t, "critical", attr.Value.AsString())
	})

	t.Run("AssetCategory", func(t *testing.T) {
		attr := AssetCategory("level-1")
		assert.Equal(t, AttrAssetCategory, string(attr.Key))
		assert.Equal(t, "level-1", attr.Value.AsString())
	})

	t.Run("AssetSize", func(t *testing.T) {
		attr := AssetSize(1048576)
		assert.Equal(t, AttrAssetSize, string(attr.Key))
		assert.Equal(t, int64(1048576), attr.Value.AsInt64())
	})

	t.Run("AssetFormat", func(t *testing.T) {
		attr := AssetFormat(".png")
		assert.Equal(t, AttrAssetFormat, string(attr.Key))
		assert.Equal(t, ".png", attr.Value.AsString())
	})

	t.Run("AssetDecoded", func(t *testing.T) {
		attr := AssetDecoded(true)
		assert.Equal(t, AttrAssetDecoded, string(attr.Key))
		assert.True(t, attr.Value.AsBool())
	})

	t.Run("QueueDepth", func(t *testing.T) {
		attr := QueueDepth(7)
		assert.Equal(t, AttrQueueDepth, string(attr.Key))
		assert.Equal(t, int64(7), attr.Value.AsInt64())
	})

	t.Run("InFlight", func(t *testing.T) {
		attr := InFlight(3)
		assert.Equal(t, AttrInFlight, string(attr.Key))
		assert.Equal(t, int64(3), attr.Value.AsInt64())
	})

	t.Run("Outcome", func(t *testing.T) {
		attr := Outcome("dedup")
		assert.Equal(t, AttrOutcome, string(attr.Key))
		assert.Equal(t, "dedup", attr.Value.AsString())
	})

	t.Run("CacheHit", func(t *testing.T) {
		attr := CacheHit(true)
		assert.Equal(t, AttrCacheHit, string(attr.Key))
		assert.True(t, attr.Value.AsBool())
	})

	t.Run("CacheEntries", func(t *testing.T) {
		attr := CacheEntries(42)
		assert.Equal(t, AttrCacheEntries, string(attr.Key))
		assert.Equal(t, int64(42), attr.Value.AsInt64())
	})

	t.Run("CacheBytes", func(t *testing.T) {
		attr := CacheBytes(104857600)
		assert.Equal(t, AttrCacheBytes, string(attr.Key))
		assert.Equal(t, int64(104857600), attr.Value.AsInt64())
	})

	t.Run("EvictReason", func(t *testing.T) {
		attr := EvictReason("ttl")
		assert.Equal(t, AttrEvictReason, string(attr.Key))
		assert.Equal(t, "ttl", attr.Value.AsString())
	})

	t.Run("BundlePath", func(t *testing.T) {
		attr := BundlePath("/var/lib/assets")
		assert.Equal(t, AttrBundlePath, string(attr.Key))
		assert.Equal(t, "/var/lib/assets", attr.Value.AsString())
	})

	t.Run("BundleFormat", func(t *testing.T) {
		attr := BundleFormat("badger")
		assert.Equal(t, AttrBundleFormat, string(attr.Key))
		assert.Equal(t, "badger", attr.Value.AsString())
	})

	t.Run("BundleAssets", func(t *testing.T) {
		attr := BundleAssets(128)
		assert.Equal(t, AttrBundleAssets, string(attr.Key))
		assert.Equal(t, int64(128), attr.Value.AsInt64())
	})
}

func TestStartLoadSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartLoadSpan(ctx, "textures/hero.png", "high")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	// With additional attributes
	newCtx2, span2 := StartLoadSpan(ctx, "audio/theme.ogg", "low", AssetCategory("music"), RequestID("req-1"))
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()
}

func TestStartCacheSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartCacheSpan(ctx, "lookup")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	// With additional attributes
	newCtx2, span2 := StartCacheSpan(ctx, "sweep", CacheEntries(10), CacheBytes(4096))
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()
}

func TestStartBundleSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartBundleSpan(ctx, "read", "data/level.json")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	// Without an asset key (bundle-wide operation)
	newCtx2, span2 := StartBundleSpan(ctx, "list", "", BundleFormat("dir"))
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()
}
