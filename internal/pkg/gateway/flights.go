package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
)

// ListFlights fetches the full flight snapshot.
func (c *Client) ListFlights(ctx context.Context) ([]dto.Flight, error) {
	var flights []dto.Flight

	if err := c.do(ctx, http.MethodGet, "/api/flights", nil, nil, &flights); err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}

	return flights, nil
}

// GetFlight fetches a single flight by id.
func (c *Client) GetFlight(ctx context.Context, id int64) (dto.Flight, error) {
	var flight dto.Flight

	path := fmt.Sprintf("/api/flights/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &flight); err != nil {
		return dto.Flight{}, fmt.Errorf("get flight %d: %w", id, err)
	}

	return flight, nil
}

// SearchFlights issues a filtered query. An empty result set is a valid
// outcome, not an error.
func (c *Client) SearchFlights(ctx context.Context, criteria dto.SearchCriteria) ([]dto.Flight, error) {
	query := url.Values{}

	if criteria.From != "" {
		query.Set("from", criteria.From)
	}

	if criteria.To != "" {
		query.Set("to", criteria.To)
	}

	if criteria.Date != "" {
		query.Set("date", criteria.Date)
	}

	flights := []dto.Flight{}

	if err := c.do(ctx, http.MethodGet, "/api/flights/search", query, nil, &flights); err != nil {
		return nil, fmt.Errorf("search flights: %w", err)
	}

	return flights, nil
}

// AvailableFlights fetches flights that still have seats.
func (c *Client) AvailableFlights(ctx context.Context) ([]dto.Flight, error) {
	var flights []dto.Flight

	if err := c.do(ctx, http.MethodGet, "/api/flights/available", nil, nil, &flights); err != nil {
		return nil, fmt.Errorf("available flights: %w", err)
	}

	return flights, nil
}

// FlightsByDeparture fetches flights departing from the given airport.
func (c *Client) FlightsByDeparture(ctx context.Context, airportCode string) ([]dto.Flight, error) {
	var flights []dto.Flight

	path := "/api/flights/departure/" + url.PathEscape(airportCode)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &flights); err != nil {
		return nil, fmt.Errorf("flights by departure %s: %w", airportCode, err)
	}

	return flights, nil
}

// FlightsByArrival fetches flights arriving at the given airport.
func (c *Client) FlightsByArrival(ctx context.Context, airportCode string) ([]dto.Flight, error) {
	var flights []dto.Flight

	path := "/api/flights/arrival/" + url.PathEscape(airportCode)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &flights); err != nil {
		return nil, fmt.Errorf("flights by arrival %s: %w", airportCode, err)
	}

	return flights, nil
}
