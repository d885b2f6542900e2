// Package gateway is the typed request/response boundary to the Skyline
// backend. It does pure I/O: one round trip per call, a fixed overall
// deadline, and structured failure values. No business logic lives here.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
	"github.com/skylinedemo/skyline-console/internal/pkg/exception"
	"github.com/skylinedemo/skyline-console/internal/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// Client talks to the Skyline backend over HTTP with JSON bodies.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client against baseURL. A non-positive timeout falls back to
// the fixed 10s deadline.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// do performs one round trip and decodes a 2xx JSON body into out (which may
// be nil for empty responses). Failures come back as exception.RequestError
// or exception.BusinessError; callers decide how to degrade.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, logger.RequestIDKey, requestID)

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}

		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.DebugContext(ctx, "backend request",
		slog.String("method", method),
		slog.String("url", fullURL))

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reqErr := classifyTransportError(err)
		slog.WarnContext(ctx, "backend request failed",
			slog.String("method", method),
			slog.String("url", fullURL),
			slog.String("kind", string(reqErr.Kind)),
			slog.String("error", err.Error()))

		return reqErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return exception.RequestError{Kind: exception.RequestErrorNetwork, Cause: err}
	}

	slog.DebugContext(ctx, "backend response",
		slog.String("method", method),
		slog.String("url", fullURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return classifyErrorResponse(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}

	return nil
}

// doText performs a round trip for a plaintext endpoint.
func (c *Client) doText(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", exception.RequestError{Kind: exception.RequestErrorNetwork, Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyErrorResponse(resp.StatusCode, respBody)
	}

	return string(respBody), nil
}

func classifyTransportError(err error) exception.RequestError {
	var urlErr *url.Error

	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &urlErr) && urlErr.Timeout()) {
		return exception.RequestError{Kind: exception.RequestErrorTimeout, Cause: err}
	}

	return exception.RequestError{Kind: exception.RequestErrorNetwork, Cause: err}
}

// classifyErrorResponse tells a backend refusal apart from a plain HTTP
// failure. A 4xx with a decodable message is the backend rejecting the
// request on business grounds; anything else is a RequestError.
func classifyErrorResponse(statusCode int, body []byte) error {
	if statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError {
		if message := decodeErrorMessage(body); message != "" {
			return exception.BusinessError{Message: message, StatusCode: statusCode}
		}
	}

	return exception.RequestError{
		Kind:       exception.RequestErrorHTTP,
		StatusCode: statusCode,
		Body:       string(body),
	}
}

func decodeErrorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if payload.Error != "" {
		return payload.Error
	}

	return payload.Message
}

// FlightAPI is the flight slice of the backend consumed by the catalog store.
type FlightAPI interface {
	ListFlights(ctx context.Context) ([]dto.Flight, error)
	GetFlight(ctx context.Context, id int64) (dto.Flight, error)
	SearchFlights(ctx context.Context, criteria dto.SearchCriteria) ([]dto.Flight, error)
	AvailableFlights(ctx context.Context) ([]dto.Flight, error)
}

// ReservationAPI is the reservation slice consumed by the workflow.
type ReservationAPI interface {
	ListReservations(ctx context.Context) ([]dto.Reservation, error)
	GetReservation(ctx context.Context, id int64) (dto.Reservation, error)
	CreateReservation(ctx context.Context, req dto.ReservationRequest) (dto.Reservation, error)
	UpdateReservation(ctx context.Context, id int64, req dto.ReservationRequest) (dto.Reservation, error)
	CancelReservation(ctx context.Context, id int64) error
	DeleteReservation(ctx context.Context, id int64) error
	ReservationsByEmail(ctx context.Context, email string) ([]dto.Reservation, error)
	ReservationsByFlight(ctx context.Context, flightID int64) ([]dto.Reservation, error)
}

// SystemAPI is the health/stress slice consumed by the monitor.
type SystemAPI interface {
	Health(ctx context.Context) (dto.HealthStatus, error)
	Ready(ctx context.Context) (dto.ReadyStatus, error)
	SystemInfo(ctx context.Context) (dto.SystemInfo, error)
	StressCPU(ctx context.Context, seconds int) (dto.CPUStressResult, error)
	StressMemory(ctx context.Context, sizeMB int) (dto.MemoryStressResult, error)
}
