package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
)

// Health fetches the liveness report, including the database block.
func (c *Client) Health(ctx context.Context) (dto.HealthStatus, error) {
	var health dto.HealthStatus

	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &health); err != nil {
		return dto.HealthStatus{}, fmt.Errorf("health: %w", err)
	}

	return health, nil
}

// Ready fetches the readiness probe.
func (c *Client) Ready(ctx context.Context) (dto.ReadyStatus, error) {
	var ready dto.ReadyStatus

	if err := c.do(ctx, http.MethodGet, "/ready", nil, nil, &ready); err != nil {
		return dto.ReadyStatus{}, fmt.Errorf("ready: %w", err)
	}

	return ready, nil
}

// SystemInfo fetches the processor/memory snapshot.
func (c *Client) SystemInfo(ctx context.Context) (dto.SystemInfo, error) {
	var info dto.SystemInfo

	if err := c.do(ctx, http.MethodGet, "/stress/info", nil, nil, &info); err != nil {
		return dto.SystemInfo{}, fmt.Errorf("system info: %w", err)
	}

	return info, nil
}

// StressCPU runs the backend CPU burner for the given number of seconds. The
// call is subject to the same fixed deadline as every other request; a run
// longer than the deadline surfaces as a timeout failure.
func (c *Client) StressCPU(ctx context.Context, seconds int) (dto.CPUStressResult, error) {
	var result dto.CPUStressResult

	query := url.Values{"seconds": []string{strconv.Itoa(seconds)}}
	if err := c.do(ctx, http.MethodGet, "/stress/cpu", query, nil, &result); err != nil {
		return dto.CPUStressResult{}, fmt.Errorf("cpu stress: %w", err)
	}

	return result, nil
}

// StressMemory asks the backend to allocate sizeMB megabytes.
func (c *Client) StressMemory(ctx context.Context, sizeMB int) (dto.MemoryStressResult, error) {
	var result dto.MemoryStressResult

	query := url.Values{"sizeMB": []string{strconv.Itoa(sizeMB)}}
	if err := c.do(ctx, http.MethodGet, "/stress/memory", query, nil, &result); err != nil {
		return dto.MemoryStressResult{}, fmt.Errorf("memory stress: %w", err)
	}

	return result, nil
}

// Metrics fetches the plaintext Prometheus exposition.
func (c *Client) Metrics(ctx context.Context) (string, error) {
	body, err := c.doText(ctx, "/metrics")
	if err != nil {
		return "", fmt.Errorf("metrics: %w", err)
	}

	return body, nil
}
