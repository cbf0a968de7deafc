package handlers

import (
	"net/http"

	"github.com/playforge/assetloader/pkg/loader"
)

// StatsHandler serves loader statistics and cache introspection.
type StatsHandler struct {
	svc *loader.Service
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(svc *loader.Service) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Stats handles GET /stats - the loader's statistics snapshot.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		internalError(w, "Loader not initialized")
		return
	}
	writeJSON(w, http.StatusOK, okResponse(h.svc.Stats()))
}

// KeysResponse is the payload for GET /keys.
type KeysResponse struct {
	Count int      `json:"count"`
	Keys  []string `json:"keys"`
}

// Keys handles GET /keys - the asset keys currently resident in the cache.
func (h *StatsHandler) Keys(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		internalError(w, "Loader not initialized")
		return
	}
	keys := h.svc.CachedKeys()
	writeJSON(w, http.StatusOK, okResponse(KeysResponse{
		Count: len(keys),
		Keys:  keys,
	}))
}
