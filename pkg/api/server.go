// Package api provides the ops HTTP server: health probes, loader
// statistics and raw asset access.
package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/playforge/assetloader/internal/logger"
	"github.com/playforge/assetloader/pkg/bundle"
	"github.com/playforge/assetloader/pkg/config"
	"github.com/playforge/assetloader/pkg/loader"
)

// Server is the ops API HTTP server.
//
// Endpoints:
//   - GET /health: Liveness probe
//   - GET /health/ready: Readiness probe
//   - GET /stats: Loader statistics snapshot
//   - GET /keys: Cached asset keys
//   - GET /assets/{key}: Raw asset bytes
//   - POST /cache/warm: Load a set of assets into the cache
//   - DELETE /cache and DELETE /cache/{key}: Invalidate cached entries
//
// The server supports graceful shutdown with configurable timeout.
type Server struct {
	server       *http.Server
	cfg          config.APIConfig
	shutdownOnce sync.Once
}

// NewServer creates a new ops API server.
//
// The server is created in a stopped state; call Start to begin serving.
// Defaults are applied here as well so a server built directly in tests
// works without going through config loading.
func NewServer(cfg config.APIConfig, svc *loader.Service, bnd bundle.Bundle) *Server {
	if cfg.Port <= 0 {
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

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      NewRouter(svc, bnd),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		server: server,
		cfg:    cfg,
	}
}

// Start starts the API HTTP server and blocks until the context is
// cancelled or an error occurs. Cancellation triggers graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("ops API listening", "port", s.cfg.Port)
		logger.Debug("ops API endpoints available",
			"health", fmt.Sprintf("http://localhost:%d/health", s.cfg.Port),
			"stats", fmt.Sprintf("http://localhost:%d/stats", s.cfg.Port),
			"keys", fmt.Sprintf("http://localhost:%d/keys", s.cfg.Port),
		)

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
				// Context was cancelled, error is not needed
			}
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("ops API shutdown signal received")
		// Fresh context for the drain; the cancelled one would abort it.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("ops API server failed: %w", err)
	}
}

// Stop initiates graceful shutdown. Safe to call multiple times and safe to
// call concurrently with Start.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		logger.Debug("ops API shutdown initiated")

		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("ops API shutdown error: %w", err)
			logger.Error("ops API shutdown error", logger.Err(err))
		} else {
			logger.Info("ops API stopped gracefully")
		}
	})
	return shutdownErr
}

// Port returns the TCP port the server listens on.
func (s *Server) Port() int {
	return s.cfg.Port
}
