// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import "context"

// StorageMetric describes database storage usage.
type StorageMetric struct {
	UsedBytes    int64   `json:"used_bytes"`
	TotalBytes   int64   `json:"total_bytes"`
	UsedGB       float64 `json:"used_gb"`
	TotalGB      float64 `json:"total_gb"`
	UsagePercent float64 `json:"usage_percent"`
	FreePercent  float64 `json:"free_percent"`
}

// GrowthDay is one day of the storage growth history.
type GrowthDay struct {
	Day     string  `json:"day"`
	ValueGB float64 `json:"value_gb"`
}

// GrowthMetric summarizes weekly storage growth.
type GrowthMetric struct {
	Percentage string      `json:"percentage"`
	GrowthGB   string      `json:"growth_gb"`
	History    []GrowthDay `json:"history"`
}

// ETLRun is one pipeline execution record.
type ETLRun struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Status    string  `json:"status"` // success, failed, running, pending
	StartedAt string  `json:"started_at"`
	Duration  string  `json:"duration"`
	Error     *string `json:"error"`
}

// ETLRunsResponse lists recent pipeline executions.
type ETLRunsResponse struct {
	Runs []ETLRun `json:"runs"`
}

// ETLExecuteResponse acknowledges a manually triggered pipeline run.
type ETLExecuteResponse struct {
	RunID   string `json:"run_id"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// SystemAlert is one operational alert.
type SystemAlert struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Level       string `json:"level"` // info, warning, error, critical
	TriggeredAt string `json:"triggered_at"`
}

// AlertsResponse lists active operational alerts.
type AlertsResponse struct {
	Alerts []SystemAlert `json:"alerts"`
}

// StorageMetrics fetches database storage usage.
func (c *Client) StorageMetrics(ctx context.Context) (*StorageMetric, error) {
	var out StorageMetric
	if err := c.get(ctx, "/admin/metrics/storage", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GrowthMetrics fetches the storage growth summary.
func (c *Client) GrowthMetrics(ctx context.Context) (*GrowthMetric, error) {
	var out GrowthMetric
	if err := c.get(ctx, "/admin/metrics/growth", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ETLRuns lists recent pipeline executions.
func (c *Client) ETLRuns(ctx context.Context) (*ETLRunsResponse, error) {
	var out ETLRunsResponse
	if err := c.get(ctx, "/admin/etl/runs", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExecuteETL triggers a pipeline run.
func (c *Client) ExecuteETL(ctx context.Context) (*ETLExecuteResponse, error) {
	var out ETLExecuteResponse
	if err := c.post(ctx, "/admin/etl/runs/execute", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Alerts lists active operational alerts.
func (c *Client) Alerts(ctx context.Context) (*AlertsResponse, error) {
	var out AlertsResponse
	if err := c.get(ctx, "/admin/alerts", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
