package metrics

import "time"

// Request outcomes recorded by LoaderMetrics.ObserveRequest.
const (
	OutcomeHit      = "hit"      // served from cache
	OutcomeMiss     = "miss"     // enqueued for loading
	OutcomeDedup    = "dedup"    // attached to an in-flight load
	OutcomeRejected = "rejected" // loader not running
)

// Load statuses recorded by LoaderMetrics.ObserveLoad.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// LoaderMetrics records request and load activity for the loader service.
//
// A nil LoaderMetrics is valid and means metrics are disabled; the package
// helpers below guard against nil so instrumented code never branches on it.
type LoaderMetrics interface {
	// ObserveRequest records one Request call by outcome
	// (hit, miss, dedup, rejected).
	ObserveRequest(outcome string)

	// ObserveLoad records one completed background load with its payload
	// size, duration, and status (ok, failed).
	ObserveLoad(bytes int64, duration time.Duration, status string)

	// SetQueueDepth records the pending request count for one tier.
	SetQueueDepth(tier string, depth int)

	// SetInFlight records the number of dispatched loads not yet completed.
	SetInFlight(n int)
}

// ObserveRequest records one Request call by outcome.
//
// Example usage:
//
//	metrics.ObserveRequest(m, metrics.OutcomeHit)
func ObserveRequest(m LoaderMetrics, outcome string) {
	if m != nil {
		m.ObserveRequest(outcome)
	}
}

// ObserveLoad records one completed background load.
//
// Example usage:
//
//	start := time.Now()
//	data, err := bundle.ReadAsset(ctx, key)
//	metrics.ObserveLoad(m, int64(len(data)), time.Since(start), status)
func ObserveLoad(m LoaderMetrics, bytes int64, duration time.Duration, status string) {
	if m != nil {
		m.ObserveLoad(bytes, duration, status)
	}
}

// SetQueueDepth records the pending request count for one tier.
func SetQueueDepth(m LoaderMetrics, tier string, depth int) {
	if m != nil {
		m.SetQueueDepth(tier, depth)
	}
}

// SetInFlight records the number of dispatched loads not yet completed.
func SetInFlight(m LoaderMetrics, n int) {
	if m != nil {
		m.SetInFlight(n)
	}
}
