//go:build unit

package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
	"github.com/skylinedemo/skyline-console/internal/app/endpoints"
	"github.com/skylinedemo/skyline-console/internal/app/stub"
	"github.com/skylinedemo/skyline-console/internal/pkg/exception"
	"github.com/skylinedemo/skyline-console/internal/pkg/gateway"
)

// newTestBackend wires the stub through the full endpoint and router stack
// and returns a gateway client pointed at it, so every request exercises the
// same path the console uses against a real backend.
func newTestBackend(t *testing.T) *gateway.Client {
	t.Helper()

	service := stub.NewService(stub.WithMemoryHold(10 * time.Millisecond))
	router := MakeHTTPRouter(endpoints.MakeEndpoints(service), service)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return gateway.New(server.URL, 5*time.Second)
}

func TestRouter_FlightRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newTestBackend(t)

	flights, err := client.ListFlights(ctx)
	require.NoError(t, err)
	require.Len(t, flights, 12)

	flight, err := client.GetFlight(ctx, flights[0].ID)
	require.NoError(t, err)
	assert.Equal(t, flights[0].FlightNumber, flight.FlightNumber)

	matches, err := client.SearchFlights(ctx, dto.SearchCriteria{From: "ICN", To: "NRT"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "SK101", matches[0].FlightNumber)

	departures, err := client.FlightsByDeparture(ctx, "GMP")
	require.NoError(t, err)
	require.Len(t, departures, 1)
	assert.Equal(t, "SK301", departures[0].FlightNumber)

	_, err = client.GetFlight(ctx, 999)

	var be exception.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusNotFound, be.StatusCode)
}

func TestRouter_ReservationLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newTestBackend(t)

	req := dto.ReservationRequest{
		Flight:         dto.FlightRef{ID: 1},
		PassengerName:  "Jihoon Park",
		PassengerEmail: "jihoon@example.com",
		SeatNumber:     "12A",
	}

	created, err := client.CreateReservation(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, dto.ReservationConfirmed, created.Status)

	flight, err := client.GetFlight(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 179, flight.AvailableSeats)

	req.SeatNumber = "14C"

	updated, err := client.UpdateReservation(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "14C", updated.SeatNumber)

	byEmail, err := client.ReservationsByEmail(ctx, "jihoon@example.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)

	byFlight, err := client.ReservationsByFlight(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byFlight, 1)

	require.NoError(t, client.CancelReservation(ctx, created.ID))

	// Cancelling twice is a backend refusal, not a transport failure.
	err = client.CancelReservation(ctx, created.ID)

	var be exception.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusBadRequest, be.StatusCode)

	require.NoError(t, client.DeleteReservation(ctx, created.ID))

	remaining, err := client.ListReservations(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestRouter_SystemEndpoints(t *testing.T) {
	ctx := context.Background()
	client := newTestBackend(t)

	health, err := client.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "UP", health.Status)
	assert.Equal(t, "In-Memory", health.Database.Type)

	ready, err := client.Ready(ctx)
	require.NoError(t, err)
	assert.Equal(t, "READY", ready.Status)

	info, err := client.SystemInfo(ctx)
	require.NoError(t, err)
	assert.Positive(t, info.Processors)

	result, err := client.StressMemory(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "completed", result.Status)

	// Out-of-range magnitudes come back as refusals with a message.
	_, err = client.StressMemory(ctx, 5)

	var be exception.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusBadRequest, be.StatusCode)

	metrics, err := client.Metrics(ctx)
	require.NoError(t, err)
	assert.Contains(t, metrics, "skyline_stub_reservations")
}
