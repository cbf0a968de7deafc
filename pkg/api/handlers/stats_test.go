package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStats_ReturnsSnapshot(t *testing.T) {
	svc, _ := newTestEnv(t)
	loadAsset(t, svc, "data/level.json")
	loadAsset(t, svc, "data/level.json") // second request is a cache hit

	handler := NewStatsHandler(svc)
	req := httptest.NewRequest("GET", "/stats", nil)
	w := httptest.NewRecorder()

	handler.Stats(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", resp.Status)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected Data to be a map, got %T", resp.Data)
	}

	if data["is_initialized"] != true {
		t.Error("Expected is_initialized true")
	}
	if data["total_requests"].(float64) != 2 {
		t.Errorf("Expected 2 total requests, got %v", data["total_requests"])
	}
	if data["hits"].(float64) != 1 {
		t.Errorf("Expected 1 hit, got %v", data["hits"])
	}
	if data["misses"].(float64) != 1 {
		t.Errorf("Expected 1 miss, got %v", data["misses"])
	}
	if data["cache_entries"].(float64) != 1 {
		t.Errorf("Expected 1 cache entry, got %v", data["cache_entries"])
	}
}

func TestStats_NilService_Returns500(t *testing.T) {
	handler := NewStatsHandler(nil)
	req := httptest.NewRequest("GET", "/stats", nil)
	w := httptest.NewRecorder()

	handler.Stats(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestKeys_ListsCachedKeys(t *testing.T) {
	svc, _ := newTestEnv(t)
	loadAsset(t, svc, "data/level.json")
	loadAsset(t, svc, "notes/readme.txt")

	handler := NewStatsHandler(svc)
	req := httptest.NewRequest("GET", "/keys", nil)
	w := httptest.NewRecorder()

	handler.Keys(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected Data to be a map, got %T", resp.Data)
	}

	if data["count"].(float64) != 2 {
		t.Errorf("Expected count 2, got %v", data["count"])
	}

	keys, ok := data["keys"].([]interface{})
	if !ok {
		t.Fatalf("Expected keys to be an array, got %T", data["keys"])
	}
	if len(keys) != 2 {
		t.Fatalf("Expected 2 keys, got %d", len(keys))
	}
	if keys[0] != "data/level.json" || keys[1] != "notes/readme.txt" {
		t.Errorf("Expected sorted keys, got %v", keys)
	}
}

func TestKeys_EmptyCache(t *testing.T) {
	svc, _ := newTestEnv(t)

	handler := NewStatsHandler(svc)
	req := httptest.NewRequest("GET", "/keys", nil)
	w := httptest.NewRecorder()

	handler.Keys(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	data := resp.Data.(map[string]interface{})
	if data["count"].(float64) != 0 {
		t.Errorf("Expected count 0, got %v", data["count"])
	}
}
