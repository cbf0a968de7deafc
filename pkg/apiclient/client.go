// Package apiclient provides a client for the ops API, used by the control
// CLI to query and administer a running serve instance.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/playforge/assetloader/pkg/loader"
)

// Client is the ops API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client against baseURL (for example
// "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// envelope mirrors the server's response wrapper. Data stays raw so each
// endpoint can decode its own payload type.
type envelope struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// do performs a request and decodes the envelope's data into result. reqBody
// is JSON-encoded when non-nil. A non-2xx response becomes an *APIError
// carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, reqBody, result any) error {
	var body io.Reader
	if reqBody != nil {
		buf, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// GetStats fetches the loader statistics snapshot.
func (c *Client) GetStats(ctx context.Context) (*loader.StatsSnapshot, error) {
	var snap loader.StatsSnapshot
	if err := c.get(ctx, "/stats", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// KeysResult is the payload returned by GetKeys.
type KeysResult struct {
	Count int      `json:"count"`
	Keys  []string `json:"keys"`
}

// GetKeys fetches the asset keys currently resident in the server's cache.
func (c *Client) GetKeys(ctx context.Context) (*KeysResult, error) {
	var result KeysResult
	if err := c.get(ctx, "/keys", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HealthInfo is the liveness payload.
type HealthInfo struct {
	Service   string `json:"service"`
	StartedAt string `json:"started_at"`
	Uptime    string `json:"uptime"`
	UptimeSec int64  `json:"uptime_sec"`
}

// GetHealth fetches the liveness payload (service identity and uptime).
func (c *Client) GetHealth(ctx context.Context) (*HealthInfo, error) {
	var info HealthInfo
	if err := c.get(ctx, "/health", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Health checks the liveness probe. A nil error means the server answered.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil)
}

// Ready checks the readiness probe. A 503 comes back as an *APIError whose
// IsUnavailable reports true.
func (c *Client) Ready(ctx context.Context) error {
	return c.get(ctx, "/health/ready", nil)
}

type warmRequest struct {
	Keys     []string `json:"keys"`
	Priority string   `json:"priority,omitempty"`
	Category string   `json:"category,omitempty"`
}

// WarmResult reports the outcome of a warm run.
type WarmResult struct {
	Requested  int     `json:"requested"`
	Loaded     int     `json:"loaded"`
	Failed     int     `json:"failed"`
	DurationMs float64 `json:"duration_ms"`
}

// Warm asks the server to load keys into its cache and waits for the run to
// finish. priority and category may be empty to use the server defaults.
func (c *Client) Warm(ctx context.Context, keys []string, priority, category string) (*WarmResult, error) {
	req := warmRequest{Keys: keys, Priority: priority, Category: category}
	var result WarmResult
	if err := c.do(ctx, http.MethodPost, "/cache/warm", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ClearCache drops every cached entry on the server and returns how many
// were removed.
func (c *Client) ClearCache(ctx context.Context) (int, error) {
	var result struct {
		Removed int `json:"removed"`
	}
	if err := c.do(ctx, http.MethodDelete, "/cache", nil, &result); err != nil {
		return 0, err
	}
	return result.Removed, nil
}

// Invalidate drops one cached entry. A key that is not resident comes back
// as an *APIError whose IsNotFound reports true.
func (c *Client) Invalidate(ctx context.Context, key string) error {
	return c.do(ctx, http.MethodDelete, "/cache/"+key, nil, nil)
}
