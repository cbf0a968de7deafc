package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/playforge/assetloader/internal/logger"
	"github.com/playforge/assetloader/internal/telemetry"
	"github.com/playforge/assetloader/pkg/api"
	"github.com/playforge/assetloader/pkg/bundle"
	"github.com/playforge/assetloader/pkg/cache"
	"github.com/playforge/assetloader/pkg/config"
	"github.com/playforge/assetloader/pkg/loader"
	"github.com/playforge/assetloader/pkg/metrics"
	promexp "github.com/playforge/assetloader/pkg/metrics/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the asset loading service",
	Long: `Run the asset loading service in the foreground.

The service opens the configured asset bundle, starts the priority
scheduler and cache, and exposes the ops API for health checks, stats
and cache administration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/assetloader/config.yaml.

Examples:
  # Run with the default config file
  assetloader serve

  # Run with a custom config file
  assetloader serve --config /etc/assetloader/config.yaml

  # Run with environment variable overrides
  ASSETLOADER_LOGGING_LEVEL=DEBUG assetloader serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry (if enabled)
	telemetryCfg := telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "assetloader",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	}
	telemetryShutdown, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	// Initialize Pyroscope profiling (if enabled)
	profilingCfg := telemetry.ProfilingConfig{
		Enabled:        cfg.Telemetry.Profiling.Enabled,
		ServiceName:    "assetloader",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Profiling.Endpoint,
		ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
	}
	profilingShutdown, err := telemetry.InitProfiling(profilingCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("profiling shutdown error", "error", err)
		}
	}()

	fmt.Println("AssetLoader - Priority-scheduled asset loading service")
	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	} else {
		logger.Info("Telemetry disabled")
	}
	if telemetry.IsProfilingEnabled() {
		logger.Info("Profiling enabled", "endpoint", cfg.Telemetry.Profiling.Endpoint, "profile_types", cfg.Telemetry.Profiling.ProfileTypes)
	} else {
		logger.Info("Profiling disabled")
	}

	// Initialize metrics (if enabled)
	var (
		loaderMetrics metrics.LoaderMetrics
		cacheMetrics  metrics.CacheMetrics
		metricsServer *http.Server
	)
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		loaderMetrics = promexp.NewLoaderMetrics()
		cacheMetrics = promexp.NewCacheMetrics()

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server error", "error", err)
			}
		}()
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Open the asset bundle. Resolve "auto" up front so the watcher
	// decision below sees the concrete format.
	format, err := bundle.ParseFormat(cfg.Bundle.Format)
	if err != nil {
		return err
	}
	if format == bundle.FormatAuto {
		format, err = bundle.Detect(cfg.Bundle.Path)
		if err != nil {
			return err
		}
	}
	bnd, err := bundle.Open(cfg.Bundle.Path, format)
	if err != nil {
		return fmt.Errorf("failed to open bundle: %w", err)
	}
	defer func() { _ = bnd.Close() }()
	logger.Info("Bundle opened", "path", cfg.Bundle.Path, "format", string(format))

	// Create and start the loader service
	svc := loader.New(bnd, loader.Config{
		MaxConcurrentLoads: cfg.Loader.MaxConcurrentLoads,
		TickInterval:       cfg.Loader.TickInterval,
		QueueWarnDepth:     cfg.Loader.QueueWarnDepth,
		Cache: cache.Config{
			TTL:           cfg.Cache.TTL,
			SweepInterval: cfg.Cache.SweepInterval,
			MaxSize:       cfg.Cache.MaxSize.Uint64(),
			Metrics:       cacheMetrics,
		},
		Metrics: loaderMetrics,
	})
	svc.Start(ctx)
	logger.Info("Loader started",
		"max_concurrent_loads", cfg.Loader.MaxConcurrentLoads,
		"tick_interval", cfg.Loader.TickInterval,
		"cache_ttl", cfg.Cache.TTL,
		"cache_max_size", cfg.Cache.MaxSize.String())

	// Watch the bundle for changes and invalidate stale cache entries
	var watcher *bundle.Watcher
	if cfg.Bundle.Watch {
		if format == bundle.FormatDir {
			watcher, err = bundle.NewWatcher(cfg.Bundle.Path)
			if err != nil {
				return fmt.Errorf("failed to start bundle watcher: %w", err)
			}
			watcher.Start()
			go func() {
				for key := range watcher.Events() {
					if svc.Invalidate(key) {
						logger.Info("cached asset invalidated after bundle change", "key", key)
					}
				}
			}()
			logger.Info("Bundle watcher started", "path", cfg.Bundle.Path)
		} else {
			logger.Warn("Bundle watching requires a dir bundle, ignoring watch setting", "format", string(format))
		}
	}

	// Start the ops API server
	serverDone := make(chan error, 1)
	if cfg.API.Enabled {
		apiServer := api.NewServer(cfg.API, svc, bnd)
		go func() {
			serverDone <- apiServer.Start(ctx)
		}()
	} else {
		logger.Info("Ops API disabled")
	}

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	var runErr error
	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		if cfg.API.Enabled {
			if err := <-serverDone; err != nil {
				logger.Error("API server shutdown error", "error", err)
				runErr = err
			}
		}

	case err := <-serverDone:
		signal.Stop(sigChan)
		cancel()
		if err != nil {
			logger.Error("API server error", "error", err)
			runErr = err
		}
	}

	// Teardown order: stop the invalidation feed first, then the loader,
	// then the metrics endpoint. The bundle closes via defer.
	if watcher != nil {
		if err := watcher.Close(); err != nil {
			logger.Error("Bundle watcher shutdown error", "error", err)
		}
	}
	if err := svc.Close(); err != nil {
		logger.Error("Loader shutdown error", "error", err)
	}
	if metricsServer != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelShutdown()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown error", "error", err)
		}
	}

	if runErr != nil {
		return runErr
	}
	logger.Info("Server stopped gracefully")
	return nil
}

// getConfigSource returns a description of where the config was loaded from.
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}
