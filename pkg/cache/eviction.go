package cache

import (
	"sort"
	"time"

	"github.com/playforge/assetloader/internal/logger"
	"github.com/playforge/assetloader/pkg/metrics"
)

// ============================================================================
// Eviction (TTL + LRU size bound)
// ============================================================================
//
// Eviction runs on two triggers inside the janitor pass:
//
//   1. TTL sweep: entries unaccessed for longer than the TTL are removed
//      unconditionally.
//   2. Size sweep: if the total still exceeds maxSize afterwards, entries
//      are evicted oldest-access-first until the total is at or below it.
//
// Both sweeps are destructive - once evicted, a subsequent request for the
// key is a cache miss and the asset is reloaded from the bundle.

// SweepExpired removes every entry whose last access is older than the TTL,
// measured against now. Returns the number of entries removed.
//
// Exposed (with an explicit now) so tests and manual cache management can
// drive expiry deterministically; the janitor calls it with time.Now().
// No-op when TTL expiry is disabled.
func (c *Cache) SweepExpired(now time.Time) int {
	if c.ttl <= 0 {
		return 0
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	expired := 0
	for key, e := range c.entries {
		if now.Sub(e.LastAccess) > c.ttl {
			c.removeEntryLocked(key, e)
			expired++
		}
	}
	count := len(c.entries)
	c.mu.Unlock()

	if expired > 0 {
		metrics.RecordEviction(c.metrics, metrics.ReasonTTL, expired)
		metrics.SetSize(c.metrics, int64(c.totalSize.Load()))
		metrics.SetEntries(c.metrics, count)
		logger.Debug("expired cache entries removed",
			logger.Evicted(expired),
			logger.Reason(metrics.ReasonTTL),
			logger.Entries(count))
	}
	return expired
}

// SweepSize evicts least-recently-accessed entries until the total size is
// at or below the configured cap. Returns the number of entries evicted.
// No-op when the cache is unbounded.
func (c *Cache) SweepSize() int {
	if c.maxSize == 0 {
		return 0
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	evicted := c.evictToTargetLocked(c.maxSize)
	count := len(c.entries)
	c.mu.Unlock()

	if evicted > 0 {
		metrics.RecordEviction(c.metrics, metrics.ReasonSize, evicted)
		metrics.SetSize(c.metrics, int64(c.totalSize.Load()))
		metrics.SetEntries(c.metrics, count)
		logger.Debug("cache entries evicted under size pressure",
			logger.Evicted(evicted),
			logger.Reason(metrics.ReasonSize),
			logger.CacheSize(int64(c.totalSize.Load())),
			logger.CacheCapacity(int64(c.maxSize)))
	}
	return evicted
}

// evictToTargetLocked evicts entries oldest-access-first until the total
// size is at or below target. Caller must hold c.mu for writing.
func (c *Cache) evictToTargetLocked(target uint64) int {
	if c.totalSize.Load() <= target {
		return 0
	}

	type keyAge struct {
		key        string
		lastAccess time.Time
	}

	byAge := make([]keyAge, 0, len(c.entries))
	for key, e := range c.entries {
		byAge = append(byAge, keyAge{key, e.LastAccess})
	}

	// Oldest first
	sort.Slice(byAge, func(i, j int) bool {
		return byAge[i].lastAccess.Before(byAge[j].lastAccess)
	})

	evicted := 0
	for _, ka := range byAge {
		if c.totalSize.Load() <= target {
			break
		}
		if e, ok := c.entries[ka.key]; ok {
			c.removeEntryLocked(ka.key, e)
			evicted++
		}
	}
	return evicted
}

// removeEntryLocked deletes an entry and settles size accounting. Caller
// must hold c.mu for writing; metrics are the caller's responsibility.
func (c *Cache) removeEntryLocked(key string, e *Entry) {
	delete(c.entries, key)
	c.totalSize.Add(^(e.Size - 1)) // Atomic subtract
}
