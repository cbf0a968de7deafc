package loader

import (
	"time"

	"github.com/google/uuid"
)

// LoadRequest is a queued unit of work. It carries the asset key, the tier
// it waits in, and the Future that admission handed back to the caller.
type LoadRequest struct {
	// ID identifies the request in logs and traces.
	ID string

	// Key is the bundle-relative asset key to load.
	Key string

	// Priority is the dispatch tier the request waits in.
	Priority Priority

	// Category is a free-form caller label (for example "ui" or "terrain").
	// It is carried into logs; the scheduler does not interpret it.
	Category string

	// EnqueuedAt is when the request was admitted to the queue.
	EnqueuedAt time.Time

	future *Future
}

func newLoadRequest(key string, priority Priority, category string) *LoadRequest {
	return &LoadRequest{
		ID:         uuid.NewString(),
		Key:        key,
		Priority:   priority,
		Category:   category,
		EnqueuedAt: time.Now(),
		future:     newFuture(),
	}
}
