package handlers

// This file contains the cache administration endpoints: warming a set of
// assets into the cache and invalidating cached entries.

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playforge/assetloader/internal/logger"
	"github.com/playforge/assetloader/pkg/loader"
)

// CacheHandler handles cache administration endpoints.
type CacheHandler struct {
	svc *loader.Service
}

// NewCacheHandler creates a new cache handler.
func NewCacheHandler(svc *loader.Service) *CacheHandler {
	return &CacheHandler{svc: svc}
}

// WarmRequest is the body for POST /cache/warm.
type WarmRequest struct {
	// Keys lists the assets to load.
	Keys []string `json:"keys"`

	// Priority is the tier to queue the loads at. Empty selects "low",
	// matching the speculative nature of warming.
	Priority string `json:"priority,omitempty"`

	// Category tags the requests for logging. Empty selects "warm".
	Category string `json:"category,omitempty"`
}

// WarmResponse reports the outcome of a warm run.
type WarmResponse struct {
	Requested  int     `json:"requested"`
	Loaded     int     `json:"loaded"`
	Failed     int     `json:"failed"`
	DurationMs float64 `json:"duration_ms"`
}

// Warm handles POST /cache/warm - load a set of assets into the cache.
//
// The response is written once every requested asset has either loaded or
// failed. Cancelling the request abandons the wait but not the loads; they
// finish in the background and populate the cache anyway.
func (h *CacheHandler) Warm(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		internalError(w, "Loader not initialized")
		return
	}

	var req WarmRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if len(req.Keys) == 0 {
		badRequest(w, "At least one key is required")
		return
	}

	priority := loader.PriorityLow
	if req.Priority != "" {
		p, err := loader.ParsePriority(req.Priority)
		if err != nil {
			badRequest(w, "Invalid priority. Must be 'critical', 'high', 'medium' or 'low'")
			return
		}
		priority = p
	}

	category := req.Category
	if category == "" {
		category = "warm"
	}

	start := time.Now()

	futures := make([]*loader.Future, len(req.Keys))
	for i, key := range req.Keys {
		futures[i] = h.svc.Request(key, priority, category)
	}

	resp := WarmResponse{Requested: len(req.Keys)}
	for _, f := range futures {
		ok, err := f.Wait(r.Context())
		if err != nil {
			writeJSON(w, http.StatusRequestTimeout, errorResponse("Warm interrupted before all assets finished"))
			return
		}
		if ok {
			resp.Loaded++
		} else {
			resp.Failed++
		}
	}
	resp.DurationMs = float64(time.Since(start).Milliseconds())

	logger.Info("cache warm completed",
		logger.Count(resp.Requested),
		logger.Tier(priority.String()),
		logger.DurationMs(resp.DurationMs))
	writeJSON(w, http.StatusOK, okResponse(resp))
}

// Clear handles DELETE /cache - drop every cached entry.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		internalError(w, "Loader not initialized")
		return
	}

	removed := h.svc.InvalidateAll()
	logger.Info("cache cleared", logger.Count(removed))
	writeJSON(w, http.StatusOK, okResponse(map[string]int{"removed": removed}))
}

// Invalidate handles DELETE /cache/{key} - drop one cached entry.
//
// Returns 404 when the key is not resident; invalidation of an absent key is
// not an error worth distinguishing beyond that.
func (h *CacheHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		internalError(w, "Loader not initialized")
		return
	}

	key := chi.URLParam(r, "*")
	if key == "" {
		badRequest(w, "Asset key is required")
		return
	}

	if !h.svc.Invalidate(key) {
		notFound(w, "Asset not cached")
		return
	}

	logger.Debug("cache entry invalidated", logger.Asset(key))
	writeJSON(w, http.StatusOK, okResponse(map[string]string{"removed": key}))
}
