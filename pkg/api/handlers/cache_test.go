package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// newCacheRouter mounts the cache handler the way the API router does, so
// wildcard keys resolve through chi.URLParam.
func newCacheRouter(h *CacheHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/cache/warm", h.Warm)
	r.Delete("/cache", h.Clear)
	r.Delete("/cache/*", h.Invalidate)
	return r
}

func warmData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected Data to be a map, got %T", resp.Data)
	}
	return data
}

func TestWarm_LoadsAssets(t *testing.T) {
	svc, _ := newTestEnv(t)
	handler := NewCacheHandler(svc)

	body := `{"keys":["data/level.json","notes/readme.txt"],"priority":"high"}`
	req := httptest.NewRequest("POST", "/cache/warm", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Warm(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	data := warmData(t, w)
	if data["requested"].(float64) != 2 {
		t.Errorf("Expected 2 requested, got %v", data["requested"])
	}
	if data["loaded"].(float64) != 2 {
		t.Errorf("Expected 2 loaded, got %v", data["loaded"])
	}
	if data["failed"].(float64) != 0 {
		t.Errorf("Expected 0 failed, got %v", data["failed"])
	}

	if !svc.IsLoaded("data/level.json") || !svc.IsLoaded("notes/readme.txt") {
		t.Error("Expected warmed assets to be cached")
	}
}

func TestWarm_ReportsFailures(t *testing.T) {
	svc, _ := newTestEnv(t)
	handler := NewCacheHandler(svc)

	body := `{"keys":["data/level.json","no/such/asset.bin"]}`
	req := httptest.NewRequest("POST", "/cache/warm", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Warm(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	data := warmData(t, w)
	if data["loaded"].(float64) != 1 {
		t.Errorf("Expected 1 loaded, got %v", data["loaded"])
	}
	if data["failed"].(float64) != 1 {
		t.Errorf("Expected 1 failed, got %v", data["failed"])
	}
}

func TestWarm_EmptyKeys_Returns400(t *testing.T) {
	svc, _ := newTestEnv(t)
	handler := NewCacheHandler(svc)

	req := httptest.NewRequest("POST", "/cache/warm", strings.NewReader(`{"keys":[]}`))
	w := httptest.NewRecorder()

	handler.Warm(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestWarm_InvalidPriority_Returns400(t *testing.T) {
	svc, _ := newTestEnv(t)
	handler := NewCacheHandler(svc)

	body := `{"keys":["data/level.json"],"priority":"urgent"}`
	req := httptest.NewRequest("POST", "/cache/warm", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Warm(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestWarm_InvalidJSON_Returns400(t *testing.T) {
	svc, _ := newTestEnv(t)
	handler := NewCacheHandler(svc)

	req := httptest.NewRequest("POST", "/cache/warm", strings.NewReader(`{broken`))
	w := httptest.NewRecorder()

	handler.Warm(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestClear_RemovesAllEntries(t *testing.T) {
	svc, _ := newTestEnv(t)
	loadAsset(t, svc, "data/level.json")
	loadAsset(t, svc, "notes/readme.txt")

	handler := NewCacheHandler(svc)
	req := httptest.NewRequest("DELETE", "/cache", nil)
	w := httptest.NewRecorder()

	handler.Clear(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	data := warmData(t, w)
	if data["removed"].(float64) != 2 {
		t.Errorf("Expected 2 removed, got %v", data["removed"])
	}
	if got := svc.Stats().CacheEntries; got != 0 {
		t.Errorf("Expected empty cache, got %d entries", got)
	}
}

func TestInvalidate_RemovesKey(t *testing.T) {
	svc, _ := newTestEnv(t)
	loadAsset(t, svc, "data/level.json")

	router := newCacheRouter(NewCacheHandler(svc))
	req := httptest.NewRequest("DELETE", "/cache/data/level.json", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if svc.IsLoaded("data/level.json") {
		t.Error("Expected asset to be invalidated")
	}
}

func TestInvalidate_NotCached_Returns404(t *testing.T) {
	svc, _ := newTestEnv(t)

	router := newCacheRouter(NewCacheHandler(svc))
	req := httptest.NewRequest("DELETE", "/cache/data/level.json", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Error != "Asset not cached" {
		t.Errorf("Expected error 'Asset not cached', got '%s'", resp.Error)
	}
}
