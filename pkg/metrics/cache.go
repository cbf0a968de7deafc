package metrics

// Eviction reasons recorded by CacheMetrics.RecordEviction.
const (
	ReasonTTL      = "ttl"      // entry expired (unaccessed past TTL)
	ReasonSize     = "size"     // evicted to get under the size bound
	ReasonExplicit = "explicit" // removed via Invalidate/Remove
)

// CacheMetrics records cache occupancy and eviction activity.
//
// A nil CacheMetrics is valid and means metrics are disabled; the package
// helpers below guard against nil so instrumented code never branches on it.
type CacheMetrics interface {
	// RecordInsert records one entry insertion with its payload size.
	RecordInsert(bytes int64)

	// RecordEviction records evicted entries by reason (ttl, size, explicit).
	RecordEviction(reason string, count int)

	// SetSize records the current total payload bytes held by the cache.
	SetSize(bytes int64)

	// SetEntries records the current number of cached entries.
	SetEntries(n int)
}

// RecordInsert records one entry insertion with its payload size.
//
// Example usage:
//
//	cache.Put(key, data)
//	metrics.RecordInsert(m, int64(len(data)))
func RecordInsert(m CacheMetrics, bytes int64) {
	if m != nil {
		m.RecordInsert(bytes)
	}
}

// RecordEviction records evicted entries by reason.
//
// Example usage:
//
//	evicted := store.SweepExpired(time.Now())
//	metrics.RecordEviction(m, metrics.ReasonTTL, evicted)
func RecordEviction(m CacheMetrics, reason string, count int) {
	if m != nil {
		m.RecordEviction(reason, count)
	}
}

// SetSize records the current total payload bytes held by the cache.
func SetSize(m CacheMetrics, bytes int64) {
	if m != nil {
		m.SetSize(bytes)
	}
}

// SetEntries records the current number of cached entries.
func SetEntries(m CacheMetrics, n int) {
	if m != nil {
		m.SetEntries(n)
	}
}
