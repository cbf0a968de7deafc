package config

import (
	"strings"
	"time"

	"github.com/playforge/assetloader/internal/bytesize"
)

// Default loader scheduling values. These mirror the frame-driven origins of
// the loader: a 16ms tick approximates one dispatch opportunity per frame.
const (
	DefaultMaxConcurrentLoads = 3
	DefaultTickInterval       = 16 * time.Millisecond
	DefaultQueueWarnDepth     = 256
)

// Default cache bounds.
const (
	DefaultCacheTTL           = 10 * time.Minute
	DefaultCacheSweepInterval = time.Minute
	DefaultCacheMaxSize       = 100 * bytesize.MiB
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// This function is called after loading configuration from file and environment
// variables to fill in any missing values with sensible defaults.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyShutdownTimeoutDefaults(cfg)
	applyBundleDefaults(&cfg.Bundle)
	applyLoaderDefaults(&cfg.Loader)
	applyCacheDefaults(&cfg.Cache)
	applyMetricsDefaults(&cfg.Metrics)
	applyAPIDefaults(&cfg.API)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyTelemetryDefaults sets OpenTelemetry defaults.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	// Enabled defaults to false (opt-in for telemetry)

	// Default endpoint is localhost:4317 (standard OTLP gRPC port)
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}

	// Default sample rate is 1.0 (sample all traces)
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}

	applyProfilingDefaults(&cfg.Profiling)
}

// applyProfilingDefaults sets Pyroscope profiling defaults.
func applyProfilingDefaults(cfg *ProfilingConfig) {
	// Default endpoint is localhost:4040 (standard Pyroscope port)
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:4040"
	}

	if len(cfg.ProfileTypes) == 0 {
		cfg.ProfileTypes = []string{
			"cpu",
			"alloc_objects",
			"alloc_space",
			"inuse_objects",
			"inuse_space",
			"goroutines",
		}
	}
}

// applyShutdownTimeoutDefaults sets shutdown timeout defaults.
func applyShutdownTimeoutDefaults(cfg *Config) {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
}

// applyBundleDefaults sets bundle defaults.
// Bundle path is required and has no default.
func applyBundleDefaults(cfg *BundleConfig) {
	if cfg.Format == "" {
		cfg.Format = "auto"
	}
}

// applyLoaderDefaults sets loader scheduling defaults.
func applyLoaderDefaults(cfg *LoaderConfig) {
	if cfg.MaxConcurrentLoads == 0 {
		cfg.MaxConcurrentLoads = DefaultMaxConcurrentLoads
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.QueueWarnDepth == 0 {
		cfg.QueueWarnDepth = DefaultQueueWarnDepth
	}
}

// applyCacheDefaults sets cache defaults.
func applyCacheDefaults(cfg *CacheConfig) {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultCacheTTL
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultCacheSweepInterval
	}
	if cfg.MaxSize == 0 {
		cfg.MaxSize = DefaultCacheMaxSize
	}
}

// applyMetricsDefaults sets metrics defaults.
func applyMetricsDefaults(cfg *MetricsConfig) {
	// Enabled defaults to false (opt-in for metrics)
	// Port defaults to 9100 if metrics are enabled
	if cfg.Enabled && cfg.Port == 0 {
		cfg.Port = 9100
	}
}

// applyAPIDefaults sets ops API server defaults.
func applyAPIDefaults(cfg *APIConfig) {
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	cfg := &Config{
		Bundle: BundleConfig{
			Path: "./assets",
		},
		API: APIConfig{
			Enabled: true,
		},
	}

	ApplyDefaults(cfg)
	return cfg
}
