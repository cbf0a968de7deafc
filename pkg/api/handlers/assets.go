package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/playforge/assetloader/internal/logger"
	"github.com/playforge/assetloader/pkg/bufpool"
	"github.com/playforge/assetloader/pkg/bundle"
	"github.com/playforge/assetloader/pkg/loader"
)

// copyBufSize is the pooled buffer size used when streaming bundle reads.
const copyBufSize = 64 << 10

// AssetHandler streams raw asset bytes. Cached assets are served from
// memory; everything else falls back to a direct bundle read. Reads through
// this endpoint never enter the load queue and never populate the cache.
type AssetHandler struct {
	svc *loader.Service
	bnd bundle.Bundle
}

// NewAssetHandler creates a new asset handler.
func NewAssetHandler(svc *loader.Service, bnd bundle.Bundle) *AssetHandler {
	return &AssetHandler{svc: svc, bnd: bnd}
}

// Get handles GET /assets/* where the wildcard is the asset key.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		badRequest(w, "Asset key is required")
		return
	}

	if h.svc != nil {
		if e, ok := h.svc.GetCached(key); ok {
			w.Header().Set("Content-Type", contentType(key))
			w.Header().Set("Content-Length", strconv.Itoa(len(e.Data)))
			w.Header().Set("X-Cache", "HIT")
			_, _ = w.Write(e.Data)
			return
		}
	}

	if h.bnd == nil {
		internalError(w, "No bundle attached")
		return
	}

	rc, err := h.bnd.Open(r.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, bundle.ErrInvalidKey):
			badRequest(w, "Invalid asset key")
		case errors.Is(err, bundle.ErrNotFound):
			notFound(w, "Asset not found")
		default:
			logger.Error("asset read failed", logger.Asset(key), logger.Err(err))
			internalError(w, "Failed to read asset")
		}
		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Content-Type", contentType(key))
	w.Header().Set("X-Cache", "MISS")

	buf := bufpool.Get(copyBufSize)
	defer bufpool.Put(buf)

	// writerOnly hides the ResponseWriter's ReaderFrom so the copy goes
	// through the pooled buffer for every bundle backend.
	if _, err := io.CopyBuffer(writerOnly{w}, rc, buf); err != nil {
		// The header is already out; nothing to do but log.
		logger.Debug("asset stream aborted", logger.Asset(key), logger.Err(err))
	}
}

type writerOnly struct{ io.Writer }

func contentType(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
