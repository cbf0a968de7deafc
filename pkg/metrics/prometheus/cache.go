package prometheus

import (
	"github.com/playforge/assetloader/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// cacheMetrics is the Prometheus implementation of metrics.CacheMetrics.
type cacheMetrics struct {
	inserts     prometheus.Counter
	insertBytes prometheus.Histogram
	evictions   *prometheus.CounterVec
	size        prometheus.Gauge
	entries     prometheus.Gauge
}

// NewCacheMetrics creates a new Prometheus-backed CacheMetrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewCacheMetrics() metrics.CacheMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.Registry()

	return &cacheMetrics{
		inserts: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "assetloader_cache_inserts_total",
				Help: "Total number of entries inserted into the cache",
			},
		),
		insertBytes: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "assetloader_cache_insert_bytes",
				Help: "Distribution of inserted payload sizes in bytes",
				Buckets: []float64{
					1024,     // 1KB
					16384,    // 16KB
					65536,    // 64KB
					262144,   // 256KB
					1048576,  // 1MB
					4194304,  // 4MB
					16777216, // 16MB
				},
			},
		),
		evictions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetloader_cache_evictions_total",
				Help: "Total number of cache evictions by reason",
			},
			[]string{"reason"}, // "ttl", "size", "explicit"
		),
		size: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "assetloader_cache_size_bytes",
				Help: "Current total payload bytes held by the cache",
			},
		),
		entries: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "assetloader_cache_entries",
				Help: "Current number of cached entries",
			},
		),
	}
}

func (m *cacheMetrics) RecordInsert(bytes int64) {
	if m == nil {
		return
	}

	m.inserts.Inc()
	if bytes > 0 {
		m.insertBytes.Observe(float64(bytes))
	}
}

func (m *cacheMetrics) RecordEviction(reason string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.evictions.WithLabelValues(reason).Add(float64(count))
}

func (m *cacheMetrics) SetSize(bytes int64) {
	if m == nil {
		return
	}
	m.size.Set(float64(bytes))
}

func (m *cacheMetrics) SetEntries(n int) {
	if m == nil {
		return
	}
	m.entries.Set(float64(n))
}
