// Package cache implements the in-memory asset cache.
//
// The cache is a flat key → entry store guarded by a single RWMutex, with an
// atomic total-size counter so size checks never need the lock. Eviction runs
// on two triggers inside a periodic janitor pass: a TTL sweep that drops
// entries unaccessed for longer than the configured TTL, then a size sweep
// that evicts least-recently-accessed entries until the total is back under
// the cap. Inserts never evict, so the cap is a soft bound between passes.
//
// Thread safety: all methods are safe for concurrent use.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/playforge/assetloader/internal/logger"
	"github.com/playforge/assetloader/pkg/metrics"
)

// Cache is an in-memory asset store with TTL and size-bounded eviction.
//
// Construct with New, then call Start to launch the background janitor and
// Close for graceful teardown. A cache that is never started still works;
// it just never sweeps on its own.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	closed  bool

	// totalSize tracks the sum of entry payload sizes. Atomic so the
	// eviction loop can check it without re-acquiring the store lock.
	totalSize atomic.Uint64

	ttl     time.Duration
	maxSize uint64

	metrics metrics.CacheMetrics

	// Janitor state
	sweepInterval time.Duration
	stopCh        chan struct{}
	doneCh        chan struct{}
	startOnce     sync.Once
	stopOnce      sync.Once
	started       atomic.Bool
}

// New creates a cache from cfg. Zero-value fields fall back to package
// defaults where one exists (see Config).
func New(cfg Config) *Cache {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}

	ttl := cfg.TTL
	if ttl < 0 {
		ttl = 0
	}

	return &Cache{
		entries:       make(map[string]*Entry),
		ttl:           ttl,
		maxSize:       cfg.MaxSize,
		metrics:       cfg.Metrics,
		sweepInterval: cfg.SweepInterval,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Start launches the background janitor.
//
// This method is idempotent - calling it multiple times has no effect.
// The janitor runs until Stop or Close is called.
func (c *Cache) Start() {
	c.startOnce.Do(func() {
		c.started.Store(true)
		go c.janitor()
	})
}

// Stop halts the background janitor and waits for it to finish its current
// pass. Idempotent. Cached entries are left in place; use Close to tear the
// cache down entirely.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		if c.started.Load() {
			<-c.doneCh
		}
	})
}

// Close stops the janitor, drops every entry and marks the cache closed.
// Subsequent mutations fail with ErrCacheClosed and lookups miss. Idempotent.
func (c *Cache) Close() error {
	c.Stop()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	dropped := len(c.entries)
	c.entries = nil
	c.totalSize.Store(0)
	c.mu.Unlock()

	if dropped > 0 {
		metrics.RecordEviction(c.metrics, metrics.ReasonExplicit, dropped)
	}
	metrics.SetSize(c.metrics, 0)
	metrics.SetEntries(c.metrics, 0)

	logger.Debug("asset cache closed", logger.Entries(dropped))
	return nil
}

// janitor is the background goroutine that periodically runs both sweeps.
func (c *Cache) janitor() {
	defer close(c.doneCh)

	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return

		case <-ticker.C:
			expired := c.SweepExpired(time.Now())
			evicted := c.SweepSize()
			if expired > 0 || evicted > 0 {
				logger.Debug("cache sweep complete",
					logger.Evicted(expired+evicted),
					logger.Entries(c.Len()),
					logger.CacheSize(int64(c.TotalSize())))
			}
		}
	}
}
