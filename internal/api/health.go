package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// HealthStatus is the backend's liveness report.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health calls GET /health and returns the backend status when available.
// The endpoint lives at the service root, above the versioned API path.
// No authentication required; this can be used to check connectivity.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	root := strings.TrimSuffix(c.baseURL, "/v1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root+"/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HealthStatus{Status: "unknown", Version: "unknown"}, nil
	}

	var out HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Version == "" {
		out.Version = "unknown"
	}
	return &out, nil
}
