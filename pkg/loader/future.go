package loader

import (
	"context"
	"sync"
)

// Future is the completion handle returned by Request. It resolves exactly
// once with a boolean outcome: true when the asset is loaded and cached,
// false when the load failed or the service shut down first. Duplicate
// requests for an asset already being loaded share a single Future.
type Future struct {
	done chan struct{}
	once sync.Once

	// ok is written before done is closed, so readers that observe the
	// close also observe the value.
	ok bool
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// newResolvedFuture returns a Future that is already resolved. Cache hits
// and rejected requests complete without going through the queue.
func newResolvedFuture(ok bool) *Future {
	f := newFuture()
	f.resolve(ok)
	return f
}

// resolve sets the outcome and wakes all waiters. Calls after the first are
// no-ops, so a load completion racing a shutdown cannot flip the result.
func (f *Future) resolve(ok bool) {
	f.once.Do(func() {
		f.ok = ok
		close(f.done)
	})
}

// Done returns a channel that is closed when the future resolves.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future resolves or ctx is cancelled. The bool is the
// load outcome and is only meaningful when the returned error is nil.
func (f *Future) Wait(ctx context.Context) (bool, error) {
	select {
	case <-f.done:
		return f.ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Value returns the outcome without blocking. It reports false until the
// future resolves; use Done or Wait to distinguish pending from failed.
func (f *Future) Value() bool {
	select {
	case <-f.done:
		return f.ok
	default:
		return false
	}
}
