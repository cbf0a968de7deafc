// Package loader implements the asynchronous asset loading service.
//
// This file contains the statistics snapshot reported by the service and
// served on the stats endpoint.
package loader

// StatsSnapshot is a point-in-time view of the service. Counters are
// coherent with each other; the cache figures are read separately and may
// trail by an in-progress operation.
type StatsSnapshot struct {
	// IsInitialized is true between Start and Close.
	IsInitialized bool `json:"is_initialized"`

	// TotalRequests counts every Request admitted while running; rejected
	// requests (before Start, after Close) are not included.
	TotalRequests uint64 `json:"total_requests"`

	// Hits counts requests answered from the cache.
	Hits uint64 `json:"hits"`

	// Misses counts requests that needed a load, including duplicates that
	// joined one already in flight.
	Misses uint64 `json:"misses"`

	// Failures counts loads that finished with an error.
	Failures uint64 `json:"failures"`

	// HitRate is Hits over TotalRequests, 0 when nothing was requested.
	HitRate float64 `json:"hit_rate"`

	// CacheEntries and CacheBytes describe the current cache contents.
	CacheEntries int    `json:"cache_entries"`
	CacheBytes   uint64 `json:"cache_bytes"`

	// QueueDepths is the number of waiting requests per tier.
	QueueDepths map[string]int `json:"queue_depths"`

	// InFlight is the number of loads currently running.
	InFlight int `json:"in_flight"`
}

// Stats returns a snapshot of counters, queues and cache occupancy.
func (s *Service) Stats() StatsSnapshot {
	s.mu.Lock()
	snap := StatsSnapshot{
		IsInitialized: s.started && !s.closed,
		TotalRequests: s.total,
		Hits:          s.hits,
		Misses:        s.misses,
		Failures:      s.failures,
		InFlight:      s.inflightN,
		QueueDepths:   make(map[string]int, numPriorities),
	}
	for p := range s.queues {
		snap.QueueDepths[Priority(p).String()] = len(s.queues[p])
	}
	s.mu.Unlock()

	if snap.TotalRequests > 0 {
		snap.HitRate = float64(snap.Hits) / float64(snap.TotalRequests)
	}

	cs := s.cache.Stats()
	snap.CacheEntries = cs.Entries
	snap.CacheBytes = cs.TotalSize

	return snap
}
