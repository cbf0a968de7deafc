// Package loader implements the asynchronous asset loading service.
//
// A Service owns four FIFO dispatch tiers, an in-flight table and the asset
// cache. Callers hand it keys via Request and get back a Future; a scheduler
// goroutine wakes on a fixed tick, pops the highest-priority waiting
// requests up to the concurrency cap, and runs each load (bundle read plus
// optional image decode) on its own goroutine. All bookkeeping lives behind
// one mutex; bundle and decode I/O always run outside it.
package loader

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/playforge/assetloader/internal/logger"
	"github.com/playforge/assetloader/internal/telemetry"
	"github.com/playforge/assetloader/pkg/bundle"
	"github.com/playforge/assetloader/pkg/cache"
	"github.com/playforge/assetloader/pkg/metrics"
)

const (
	// DefaultMaxConcurrentLoads bounds how many loads run at once.
	DefaultMaxConcurrentLoads = 3

	// DefaultTickInterval is how often the scheduler scans the queues.
	DefaultTickInterval = 16 * time.Millisecond
)

// Config carries the tunables for a Service.
type Config struct {
	// MaxConcurrentLoads caps simultaneous loads. Zero or negative selects
	// DefaultMaxConcurrentLoads.
	MaxConcurrentLoads int

	// TickInterval is the scheduler wake-up period. Zero or negative
	// selects DefaultTickInterval.
	TickInterval time.Duration

	// QueueWarnDepth logs a warning when a tier grows past this depth.
	// Zero disables the warning.
	QueueWarnDepth int

	// Cache configures the owned asset cache.
	Cache cache.Config

	// Metrics receives loader observations. Nil disables recording.
	Metrics metrics.LoaderMetrics
}

// Service is the asset loading facade. The zero value is not usable; create
// one with New and start it with Start.
type Service struct {
	bundle  bundle.Bundle
	cache   *cache.Cache
	cfg     Config
	metrics metrics.LoaderMetrics

	// mu guards everything below. It is never held across bundle reads,
	// image decodes or future resolution.
	mu       sync.Mutex
	started  bool
	closed   bool
	queues   [numPriorities][]*LoadRequest
	inflight map[string]*Future
	// inflightN counts dispatched loads only; queued requests are not in
	// flight until the scheduler pops them.
	inflightN int

	total    uint64
	hits     uint64
	misses   uint64
	failures uint64

	baseCtx context.Context
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a Service reading from b. The service owns the cache it
// creates from cfg.Cache and closes it on Close. It panics if b is nil.
func New(b bundle.Bundle, cfg Config) *Service {
	if b == nil {
		panic("loader: nil bundle")
	}
	if cfg.MaxConcurrentLoads <= 0 {
		cfg.MaxConcurrentLoads = DefaultMaxConcurrentLoads
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	return &Service{
		bundle:   b,
		cache:    cache.New(cfg.Cache),
		cfg:      cfg,
		metrics:  cfg.Metrics,
		inflight: make(map[string]*Future),
		baseCtx:  context.Background(),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the scheduler and the cache janitor. ctx is the parent for
// all load I/O; cancelling it aborts in-progress bundle reads but does not
// stop the service. Start is a no-op on a started or closed service.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.closed {
		s.mu.Unlock()
		return
	}
	s.started = true
	if ctx != nil {
		s.baseCtx = ctx
	}
	s.mu.Unlock()

	s.cache.Start()
	go s.run()

	logger.Info("asset loader started",
		"max_concurrent_loads", s.cfg.MaxConcurrentLoads,
		"tick_interval", s.cfg.TickInterval.String())
}

// run is the scheduler loop. It dispatches on a fixed tick until Close
// signals stopCh; the base context cancels loads, not the loop itself, so a
// cancelled parent still leaves the service in a well-defined closed state.
func (s *Service) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.dispatchTick()
		}
	}
}

// dispatchTick pops runnable requests, highest tier first, until the
// concurrency cap is reached or the queues are empty, then launches a load
// goroutine for each.
func (s *Service) dispatchTick() {
	s.mu.Lock()
	if !s.started || s.closed {
		s.mu.Unlock()
		return
	}

	var dispatched []*LoadRequest
	for s.inflightN < s.cfg.MaxConcurrentLoads {
		req := s.popLocked()
		if req == nil {
			break
		}
		s.inflightN++
		dispatched = append(dispatched, req)
	}
	s.assertInflightLocked()
	depths := s.queueDepthsLocked()
	inflight := s.inflightN
	s.mu.Unlock()

	for _, req := range dispatched {
		go s.fetch(req)
	}

	if len(dispatched) > 0 {
		metrics.SetInFlight(s.metrics, inflight)
		s.recordQueueDepths(depths)
	}
}

// popLocked removes and returns the oldest request from the highest
// non-empty tier, or nil when all tiers are empty. Callers hold mu.
func (s *Service) popLocked() *LoadRequest {
	for p := PriorityCritical; p >= PriorityLow; p-- {
		q := s.queues[p]
		if len(q) == 0 {
			continue
		}
		req := q[0]
		q[0] = nil // release for GC
		s.queues[p] = q[1:]
		return req
	}
	return nil
}

// Request asks for key to be available in the cache and returns its Future.
//
// A cache hit resolves immediately. A key already queued or loading returns
// the existing Future, so concurrent callers share one load. Otherwise the
// request joins its tier's queue and the next tick may dispatch it. Requests
// made before Start or after Close resolve false immediately. Request panics
// on an undefined priority.
func (s *Service) Request(key string, priority Priority, category string) *Future {
	if !priority.IsValid() {
		panic(fmt.Sprintf("loader: invalid priority %d", int(priority)))
	}

	s.mu.Lock()
	if !s.started || s.closed {
		s.mu.Unlock()
		metrics.ObserveRequest(s.metrics, metrics.OutcomeRejected)
		logger.Warn("asset request rejected",
			logger.Asset(key),
			logger.Reason("service not running"))
		return newResolvedFuture(false)
	}

	s.total++

	if _, ok := s.cache.Get(key); ok {
		s.hits++
		s.mu.Unlock()
		metrics.ObserveRequest(s.metrics, metrics.OutcomeHit)
		return newResolvedFuture(true)
	}

	// A duplicate of a queued or in-flight key still counts as a miss: the
	// asset was not in the cache when asked for. It just rides the existing
	// load instead of triggering a second one.
	s.misses++

	if f, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		metrics.ObserveRequest(s.metrics, metrics.OutcomeDedup)
		logger.Debug("asset request joined in-flight load", logger.Asset(key))
		return f
	}

	req := newLoadRequest(key, priority, category)
	s.inflight[key] = req.future
	s.queues[priority] = append(s.queues[priority], req)
	depth := len(s.queues[priority])
	s.mu.Unlock()

	metrics.ObserveRequest(s.metrics, metrics.OutcomeMiss)
	metrics.SetQueueDepth(s.metrics, priority.String(), depth)
	if s.cfg.QueueWarnDepth > 0 && depth >= s.cfg.QueueWarnDepth {
		logger.Warn("asset queue backlog",
			logger.Tier(priority.String()),
			logger.QueueDepth(depth))
	}
	logger.Debug("asset request queued",
		logger.RequestID(req.ID),
		logger.Asset(key),
		logger.Tier(priority.String()),
		logger.Category(category),
		logger.QueueDepth(depth))

	return req.future
}

// fetch runs one dispatched load to completion. No locks are held across
// the bundle read or the decode.
func (s *Service) fetch(req *LoadRequest) {
	start := time.Now()

	ctx, span := telemetry.StartLoadSpan(s.baseCtx, req.Key, req.Priority.String(),
		telemetry.RequestID(req.ID),
		telemetry.AssetCategory(req.Category))
	defer span.End()

	lc := logger.NewLogContext(req.ID).
		WithOperation("load").
		WithAsset(req.Key, req.Priority.String())
	if sc := span.SpanContext(); sc.IsValid() {
		lc = lc.WithTrace(sc.TraceID().String(), sc.SpanID().String())
	}
	ctx = logger.WithContext(ctx, lc)

	data, img, err := s.load(ctx, req.Key)
	if err != nil {
		telemetry.RecordError(ctx, err)
	}
	s.complete(ctx, req, data, img, err, start)
}

// load reads the asset and decodes it when the key names an image format.
func (s *Service) load(ctx context.Context, key string) ([]byte, image.Image, error) {
	data, err := s.bundle.ReadAsset(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	if !isImageKey(key) {
		return data, nil, nil
	}
	img, err := decodeImage(key, data)
	if err != nil {
		return nil, nil, err
	}
	return data, img, nil
}

// complete finishes a dispatched load: it updates the in-flight table and
// counters, stores successful results in the cache, and resolves the
// Future. The cache write happens before resolution, so a waiter that sees
// true can rely on the asset being cached. Results arriving after Close are
// discarded; Close already resolved their futures.
func (s *Service) complete(ctx context.Context, req *LoadRequest, data []byte, img image.Image, err error, start time.Time) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.inflightN--
	s.assertInflightLocked()
	delete(s.inflight, req.Key)
	if err != nil {
		s.failures++
	}
	inflight := s.inflightN
	s.mu.Unlock()

	elapsed := time.Since(start)
	metrics.SetInFlight(s.metrics, inflight)

	if err != nil {
		logger.ErrorCtx(ctx, "asset load failed",
			logger.Err(err),
			logger.DurationMs(float64(elapsed.Milliseconds())))
		metrics.ObserveLoad(s.metrics, 0, elapsed, metrics.StatusFailed)
		req.future.resolve(false)
		return
	}

	if perr := s.cache.Put(req.Key, data, img); perr != nil {
		logger.WarnCtx(ctx, "asset load discarded",
			logger.Err(perr),
			logger.DurationMs(float64(elapsed.Milliseconds())))
		metrics.ObserveLoad(s.metrics, 0, elapsed, metrics.StatusFailed)
		req.future.resolve(false)
		return
	}

	metrics.ObserveLoad(s.metrics, int64(len(data)), elapsed, metrics.StatusOK)
	telemetry.SetAttributes(ctx,
		telemetry.AssetSize(uint64(len(data))),
		telemetry.AssetDecoded(img != nil))
	logger.DebugCtx(ctx, "asset loaded",
		logger.Size(uint64(len(data))),
		logger.DurationMs(float64(elapsed.Milliseconds())))
	req.future.resolve(true)
}

// Preload requests every key at the given priority and waits for all of
// them. Individual load failures are not errors; Preload only fails when
// ctx is cancelled first.
func (s *Service) Preload(ctx context.Context, keys []string, priority Priority, category string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		f := s.Request(key, priority, category)
		g.Go(func() error {
			_, err := f.Wait(ctx)
			return err
		})
	}
	return g.Wait()
}

// IsLoaded reports whether key is currently cached. It refreshes the
// entry's idle clock but does not count as a hit or a miss.
func (s *Service) IsLoaded(key string) bool {
	return s.cache.Touch(key)
}

// GetCached returns the cached entry for key, if present. Like IsLoaded it
// refreshes the entry without touching the hit and miss counters.
func (s *Service) GetCached(key string) (cache.Entry, bool) {
	return s.cache.Get(key)
}

// CachedKeys returns the sorted keys currently resident in the cache.
func (s *Service) CachedKeys() []string {
	return s.cache.Keys()
}

// Invalidate drops key from the cache so the next request reloads it.
func (s *Service) Invalidate(key string) bool {
	return s.cache.Remove(key)
}

// InvalidateAll empties the cache and returns how many entries it dropped.
func (s *Service) InvalidateAll() int {
	return s.cache.RemoveAll()
}

// Close shuts the service down: it stops the scheduler, resolves every
// queued and in-flight Future false, and closes the cache. Loads already
// running finish against a closed service and are discarded. Close is
// idempotent and safe to call on a service that was never started.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	wasStarted := s.started

	var outstanding []*Future
	for _, f := range s.inflight {
		outstanding = append(outstanding, f)
	}
	s.inflight = make(map[string]*Future)
	for p := range s.queues {
		s.queues[p] = nil
	}
	s.inflightN = 0
	s.mu.Unlock()

	if wasStarted {
		close(s.stopCh)
		<-s.doneCh
	}

	for _, f := range outstanding {
		f.resolve(false)
	}

	_ = s.cache.Close()

	metrics.SetInFlight(s.metrics, 0)
	for _, p := range Priorities() {
		metrics.SetQueueDepth(s.metrics, p.String(), 0)
	}

	logger.Info("asset loader closed", logger.Count(len(outstanding)))
	return nil
}

// queueDepthsLocked snapshots the per-tier queue lengths. Callers hold mu.
func (s *Service) queueDepthsLocked() [numPriorities]int {
	var depths [numPriorities]int
	for p := range s.queues {
		depths[p] = len(s.queues[p])
	}
	return depths
}

func (s *Service) recordQueueDepths(depths [numPriorities]int) {
	for p, depth := range depths {
		metrics.SetQueueDepth(s.metrics, Priority(p).String(), depth)
	}
}

// assertInflightLocked panics when the in-flight count leaves its legal
// range. The count is service-internal, so an excursion is a bug worth
// crashing on rather than throttling wrong.
func (s *Service) assertInflightLocked() {
	if s.inflightN < 0 || s.inflightN > s.cfg.MaxConcurrentLoads {
		panic(fmt.Sprintf("loader: in-flight count %d outside [0, %d]", s.inflightN, s.cfg.MaxConcurrentLoads))
	}
}
