package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playforge/assetloader/pkg/bundle"
	"github.com/playforge/assetloader/pkg/cache"
	"github.com/playforge/assetloader/pkg/loader"
)

// newTestEnv builds a directory bundle with a few assets and a started
// loader on top of it. Both are torn down with the test.
func newTestEnv(t *testing.T) (*loader.Service, bundle.Bundle) {
	t.Helper()

	dir := t.TempDir()
	writeAsset(t, dir, "data/level.json", []byte(`{"name":"level-1"}`))
	writeAsset(t, dir, "notes/readme.txt", []byte("hello"))

	bnd, err := bundle.NewDir(dir)
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	t.Cleanup(func() { _ = bnd.Close() })

	svc := loader.New(bnd, loader.Config{
		TickInterval: 2 * time.Millisecond,
		Cache:        cache.Config{TTL: time.Minute, SweepInterval: time.Minute},
	})
	svc.Start(context.Background())
	t.Cleanup(func() { _ = svc.Close() })

	return svc, bnd
}

func writeAsset(t *testing.T, root, key string, data []byte) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		t.Fatalf("write asset: %v", err)
	}
}

// loadAsset pushes key through the loader and fails the test if the load
// does not complete successfully.
func loadAsset(t *testing.T, svc *loader.Service, key string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ok, err := svc.Request(key, loader.PriorityHigh, "test").Wait(ctx)
	if err != nil {
		t.Fatalf("load %q: %v", key, err)
	}
	if !ok {
		t.Fatalf("load %q failed", key)
	}
}

func TestLiveness_ReturnsOK(t *testing.T) {
	handler := NewHealthHandler(nil, nil)
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	handler.Liveness(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Status != "healthy" {
		t.Errorf("Expected status 'healthy', got '%s'", resp.Status)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected Data to be a map, got %T", resp.Data)
	}

	if data["service"] != "assetloader" {
		t.Errorf("Expected service 'assetloader', got '%s'", data["service"])
	}
}

func TestReadiness_NilService_Returns503(t *testing.T) {
	handler := NewHealthHandler(nil, nil)
	req := httptest.NewRequest("GET", "/health/ready", nil)
	w := httptest.NewRecorder()

	handler.Readiness(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Status != "unhealthy" {
		t.Errorf("Expected status 'unhealthy', got '%s'", resp.Status)
	}
	if resp.Error != "loader not initialized" {
		t.Errorf("Expected error 'loader not initialized', got '%s'", resp.Error)
	}
}

func TestReadiness_NotStarted_Returns503(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "a.bin", []byte("payload"))

	bnd, err := bundle.NewDir(dir)
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	t.Cleanup(func() { _ = bnd.Close() })

	svc := loader.New(bnd, loader.Config{})
	t.Cleanup(func() { _ = svc.Close() })

	handler := NewHealthHandler(svc, bnd)
	req := httptest.NewRequest("GET", "/health/ready", nil)
	w := httptest.NewRecorder()

	handler.Readiness(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}
}

func TestReadiness_Ready_ReturnsOK(t *testing.T) {
	svc, bnd := newTestEnv(t)

	handler := NewHealthHandler(svc, bnd)
	req := httptest.NewRequest("GET", "/health/ready", nil)
	w := httptest.NewRecorder()

	handler.Readiness(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Status != "healthy" {
		t.Errorf("Expected status 'healthy', got '%s'", resp.Status)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected Data to be a map, got %T", resp.Data)
	}

	if data["bundle_assets"].(float64) != 2 {
		t.Errorf("Expected 2 bundle assets, got %v", data["bundle_assets"])
	}
}
