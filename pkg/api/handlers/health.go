package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/playforge/assetloader/pkg/bundle"
	"github.com/playforge/assetloader/pkg/loader"
)

// HealthHandler handles health check endpoints.
//
// Health endpoints are unauthenticated and provide:
//   - Liveness probe: Is the server process running?
//   - Readiness probe: Is the loader initialized and the bundle reachable?
type HealthHandler struct {
	svc       *loader.Service
	bnd       bundle.Bundle
	startedAt time.Time
}

// NewHealthHandler creates a new health handler.
//
// Both parameters may be nil, in which case the readiness check reports
// unhealthy while liveness keeps answering.
func NewHealthHandler(svc *loader.Service, bnd bundle.Bundle) *HealthHandler {
	return &HealthHandler{svc: svc, bnd: bnd, startedAt: time.Now()}
}

// Liveness handles GET /health - simple liveness probe.
//
// Returns 200 OK as long as the server process is responsive, regardless of
// loader state. Suitable for Kubernetes liveness probes.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startedAt)
	writeJSON(w, http.StatusOK, healthyResponse(map[string]any{
		"service":    "assetloader",
		"started_at": h.startedAt.UTC().Format(time.RFC3339),
		"uptime":     uptime.Round(time.Second).String(),
		"uptime_sec": int64(uptime.Seconds()),
	}))
}

// Readiness handles GET /health/ready - readiness probe.
//
// Returns 200 OK when the loader is initialized and the bundle answers a
// listing probe, 503 Service Unavailable otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse("loader not initialized"))
		return
	}

	st := h.svc.Stats()
	if !st.IsInitialized {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse("loader not initialized"))
		return
	}

	if h.bnd == nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse("no bundle attached"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	assets, err := h.bnd.List(ctx)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable,
			unhealthyResponse(fmt.Sprintf("bundle unavailable: %v", err)))
		return
	}

	writeJSON(w, http.StatusOK, healthyResponse(map[string]any{
		"bundle_assets": len(assets),
		"cache_entries": st.CacheEntries,
		"in_flight":     st.InFlight,
	}))
}
