package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registryMu sync.RWMutex
	registry   *prometheus.Registry
)

// InitRegistry creates the process-wide Prometheus registry.
//
// Until InitRegistry is called, IsEnabled reports false and all metrics
// constructors return nil, which the instrumented code treats as "metrics
// disabled" at zero overhead. Call it once at startup when metrics are
// enabled in the configuration.
func InitRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()

	if registry != nil {
		return
	}

	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IsEnabled reports whether metrics collection is enabled.
func IsEnabled() bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry != nil
}

// Registry returns the process-wide registry, or nil if metrics are disabled.
func Registry() *prometheus.Registry {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry
}

// Handler returns an http.Handler serving the registry in Prometheus
// exposition format. Returns nil if metrics are disabled.
func Handler() http.Handler {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if registry == nil {
		return nil
	}
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// resetRegistry drops the registry. Only for tests: promauto panics on
// duplicate registration, so tests that call InitRegistry must reset after.
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = nil
}
