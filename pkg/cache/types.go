// Package cache implements the in-memory asset cache.
//
// This file contains the entry, configuration and statistics types shared by
// the store and eviction code.
package cache

import (
	"errors"
	"image"
	"time"

	"github.com/playforge/assetloader/pkg/metrics"
)

// Default sweep parameters. The deployment values come from pkg/config,
// which mirrors these.
const (
	// DefaultTTL is the standard idle time before the expiry sweep removes
	// an entry. New does not apply it: a zero Config.TTL disables expiry.
	DefaultTTL = 10 * time.Minute

	// DefaultSweepInterval is how often the background janitor runs. New
	// falls back to it when Config.SweepInterval is unset.
	DefaultSweepInterval = time.Minute
)

// ============================================================================
// Errors
// ============================================================================

var (
	// ErrCacheClosed is returned when operations are attempted on a closed cache.
	ErrCacheClosed = errors.New("cache is closed")
)

// ============================================================================
// Entries
// ============================================================================

// Entry is a cached asset.
//
// Reads return Entry by value: the struct is a snapshot taken under the store
// lock, so access bookkeeping never races with a caller inspecting the copy.
type Entry struct {
	// Key is the bundle-relative path the asset was loaded from.
	Key string

	// Data is the raw asset payload. References the cache's internal
	// buffer - do not modify.
	Data []byte

	// Image is the decoded raster image, or nil when the asset is not a
	// recognized image type.
	Image image.Image

	// LoadedAt is when the payload was inserted.
	LoadedAt time.Time

	// LastAccess is the time of the most recent Get or Touch. Eviction
	// policy (TTL expiry, LRU order under size pressure) keys off this.
	LastAccess time.Time

	// AccessCount is the number of Get hits since insertion.
	AccessCount uint64

	// Size is the payload size in bytes.
	Size uint64
}

// ============================================================================
// Configuration
// ============================================================================

// Config controls cache capacity and sweep behavior.
type Config struct {
	// TTL is the maximum idle time before an entry is expired by the
	// janitor. Zero or negative disables TTL expiry.
	TTL time.Duration

	// SweepInterval is how often the janitor runs. Zero or negative falls
	// back to DefaultSweepInterval.
	SweepInterval time.Duration

	// MaxSize is the soft cap on total cached bytes (0 = unbounded).
	// The janitor evicts least-recently-accessed entries until the total
	// is at or below this cap; between janitor passes the total may
	// exceed it.
	MaxSize uint64

	// Metrics receives cache observability events. Nil disables metrics.
	Metrics metrics.CacheMetrics
}

// ============================================================================
// Statistics
// ============================================================================

// Stats contains cache statistics for observability.
type Stats struct {
	// Entries is the number of cached assets.
	Entries int

	// TotalSize is the current total payload size in bytes.
	TotalSize uint64

	// MaxSize is the configured soft size cap (0 = unbounded).
	MaxSize uint64
}
