// Package cache implements the in-memory asset cache.
//
// This file contains the store operations: insertion, lookup and explicit
// removal. Eviction lives in eviction.go.
package cache

import (
	"image"
	"sort"
	"time"

	"github.com/playforge/assetloader/pkg/metrics"
)

// Put inserts an asset under key, overwriting any previous entry for the
// same key (last writer wins). The entry starts with a zero access count and
// a fresh last-access time.
//
// Put never evicts: the janitor owns eviction, so the total size may
// transiently exceed the configured cap after an insert.
func (c *Cache) Put(key string, data []byte, img image.Image) error {
	now := time.Now()
	size := uint64(len(data))

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrCacheClosed
	}
	if old, ok := c.entries[key]; ok {
		c.totalSize.Add(^(old.Size - 1)) // Atomic subtract
	}
	c.entries[key] = &Entry{
		Key:        key,
		Data:       data,
		Image:      img,
		LoadedAt:   now,
		LastAccess: now,
		Size:       size,
	}
	c.totalSize.Add(size)
	count := len(c.entries)
	c.mu.Unlock()

	metrics.RecordInsert(c.metrics, int64(size))
	metrics.SetSize(c.metrics, int64(c.totalSize.Load()))
	metrics.SetEntries(c.metrics, count)
	return nil
}

// Get returns a snapshot of the entry for key and bumps its access metadata
// (access count and last-access time). The second return reports whether the
// key was present.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Entry{}, false
	}
	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}

	e.AccessCount++
	e.LastAccess = time.Now()
	return *e, true
}

// Touch refreshes the last-access time for key without counting an access.
// Returns false when the key is absent (or the cache is closed).
func (c *Cache) Touch(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	e, ok := c.entries[key]
	if !ok {
		return false
	}

	e.LastAccess = time.Now()
	return true
}

// Contains reports whether key is cached. Does not refresh access metadata.
func (c *Cache) Contains(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok && !c.closed
}

// Remove drops the entry for key, reporting whether it was present.
func (c *Cache) Remove(key string) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.removeEntryLocked(key, e)
	count := len(c.entries)
	c.mu.Unlock()

	metrics.RecordEviction(c.metrics, metrics.ReasonExplicit, 1)
	metrics.SetSize(c.metrics, int64(c.totalSize.Load()))
	metrics.SetEntries(c.metrics, count)
	return true
}

// RemoveAll drops every entry, returning the number removed.
func (c *Cache) RemoveAll() int {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	removed := len(c.entries)
	c.entries = make(map[string]*Entry)
	c.totalSize.Store(0)
	c.mu.Unlock()

	if removed > 0 {
		metrics.RecordEviction(c.metrics, metrics.ReasonExplicit, removed)
	}
	metrics.SetSize(c.metrics, 0)
	metrics.SetEntries(c.metrics, 0)
	return removed
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TotalSize returns the current total payload size in bytes.
func (c *Cache) TotalSize() uint64 {
	return c.totalSize.Load()
}

// Keys returns the cached keys in lexical order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Stats returns a snapshot of cache occupancy.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	count := len(c.entries)
	c.mu.RUnlock()

	return Stats{
		Entries:   count,
		TotalSize: c.totalSize.Load(),
		MaxSize:   c.maxSize,
	}
}
