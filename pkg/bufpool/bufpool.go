// Package bufpool provides a tiered buffer pool for streaming asset I/O.
//
// The pool hands out reusable byte slices for copy loops so that serving
// and packing assets does not allocate a fresh buffer per request. Three
// size tiers cover the usual shapes:
//   - Small buffers (4KB): manifests and small text assets
//   - Medium buffers (64KB): streaming copy loops
//   - Large buffers (1MB): image payload staging
//
// Requests larger than the large tier are allocated directly and never
// pooled, so an occasional oversized asset cannot pin memory.
//
// All operations are safe for concurrent use.
//
// Usage:
//
//	buf := bufpool.Get(size)
//	defer bufpool.Put(buf)
package bufpool

import "sync"

// Default buffer size classes. These can be overridden with NewPool.
const (
	// DefaultSmallSize covers manifests and small text assets (4KB)
	DefaultSmallSize = 4 << 10

	// DefaultMediumSize covers streaming copy buffers (64KB)
	DefaultMediumSize = 64 << 10

	// DefaultLargeSize covers image payload staging (1MB)
	DefaultLargeSize = 1 << 20
)

// Pool manages byte slice pools organized by size class. It selects the
// smallest class that fits a request and falls back to direct allocation
// for oversized ones.
type Pool struct {
	small      sync.Pool
	medium     sync.Pool
	large      sync.Pool
	smallSize  int
	mediumSize int
	largeSize  int
}

// Config holds the size classes for a custom pool.
type Config struct {
	// SmallSize is the size of small buffers (default: 4KB)
	SmallSize int

	// MediumSize is the size of medium buffers (default: 64KB)
	MediumSize int

	// LargeSize is the size of large buffers (default: 1MB)
	LargeSize int
}

// DefaultConfig returns the default pool configuration.
func DefaultConfig() Config {
	return Config{
		SmallSize:  DefaultSmallSize,
		MediumSize: DefaultMediumSize,
		LargeSize:  DefaultLargeSize,
	}
}

// NewPool creates a buffer pool with the given configuration. A nil config
// or zero fields select the defaults.
func NewPool(cfg *Config) *Pool {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}
	if cfg.SmallSize <= 0 {
		cfg.SmallSize = DefaultSmallSize
	}
	if cfg.MediumSize <= 0 {
		cfg.MediumSize = DefaultMediumSize
	}
	if cfg.LargeSize <= 0 {
		cfg.LargeSize = DefaultLargeSize
	}

	p := &Pool{
		smallSize:  cfg.SmallSize,
		mediumSize: cfg.MediumSize,
		largeSize:  cfg.LargeSize,
	}

	p.small = sync.Pool{
		New: func() any {
			buf := make([]byte, p.smallSize)
			return &buf
		},
	}
	p.medium = sync.Pool{
		New: func() any {
			buf := make([]byte, p.mediumSize)
			return &buf
		},
	}
	p.large = sync.Pool{
		New: func() any {
			buf := make([]byte, p.largeSize)
			return &buf
		},
	}

	return p
}

// Get returns a byte slice of at least the requested size, backed by a
// pooled buffer when the size fits a class. The caller must hand the slice
// back with Put when done; slices above the large class are plain
// allocations that Put ignores.
func (p *Pool) Get(size int) []byte {
	var bufPtr *[]byte

	switch {
	case size <= p.smallSize:
		bufPtr = p.small.Get().(*[]byte)
	case size <= p.mediumSize:
		bufPtr = p.medium.Get().(*[]byte)
	case size <= p.largeSize:
		bufPtr = p.large.Get().(*[]byte)
	default:
		// Oversized; allocate directly and let the GC have it afterwards.
		return make([]byte, size)
	}

	buf := *bufPtr
	return buf[:size]
}

// Put returns a buffer to the pool for reuse. The buffer must have come
// from Get and must not be used after Put. Buffers whose capacity does not
// match a size class are dropped for the GC.
func (p *Pool) Put(buf []byte) {
	if buf == nil {
		return
	}

	switch cap(buf) {
	case p.smallSize:
		fullBuf := buf[:cap(buf)]
		p.small.Put(&fullBuf)
	case p.mediumSize:
		fullBuf := buf[:cap(buf)]
		p.medium.Put(&fullBuf)
	case p.largeSize:
		fullBuf := buf[:cap(buf)]
		p.large.Put(&fullBuf)
	}
}

// ============================================================================
// Global pool
// ============================================================================

// globalPool is the package-level pool with default size classes.
var globalPool = NewPool(nil)

// Get returns a byte slice of at least the requested size from the global
// pool. Pair with Put.
func Get(size int) []byte {
	return globalPool.Get(size)
}

// Put returns a buffer to the global pool.
func Put(buf []byte) {
	globalPool.Put(buf)
}
