package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
)

// ListReservations fetches all reservations.
func (c *Client) ListReservations(ctx context.Context) ([]dto.Reservation, error) {
	var reservations []dto.Reservation

	if err := c.do(ctx, http.MethodGet, "/api/reservations", nil, nil, &reservations); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	return reservations, nil
}

// GetReservation fetches a single reservation by id.
func (c *Client) GetReservation(ctx context.Context, id int64) (dto.Reservation, error) {
	var reservation dto.Reservation

	path := fmt.Sprintf("/api/reservations/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &reservation); err != nil {
		return dto.Reservation{}, fmt.Errorf("get reservation %d: %w", id, err)
	}

	return reservation, nil
}

// CreateReservation books a new reservation. Seat availability is enforced
// server-side; a refusal surfaces as a BusinessError.
func (c *Client) CreateReservation(ctx context.Context, req dto.ReservationRequest) (dto.Reservation, error) {
	var reservation dto.Reservation

	if err := c.do(ctx, http.MethodPost, "/api/reservations", nil, req, &reservation); err != nil {
		return dto.Reservation{}, fmt.Errorf("create reservation: %w", err)
	}

	return reservation, nil
}

// UpdateReservation replaces passenger/seat fields of an existing reservation.
func (c *Client) UpdateReservation(ctx context.Context, id int64, req dto.ReservationRequest) (dto.Reservation, error) {
	var reservation dto.Reservation

	path := fmt.Sprintf("/api/reservations/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, req, &reservation); err != nil {
		return dto.Reservation{}, fmt.Errorf("update reservation %d: %w", id, err)
	}

	return reservation, nil
}

// CancelReservation marks a reservation CANCELLED. The backend decides
// whether the transition is legal.
func (c *Client) CancelReservation(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/reservations/%d/cancel", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, nil); err != nil {
		return fmt.Errorf("cancel reservation %d: %w", id, err)
	}

	return nil
}

// DeleteReservation removes a reservation regardless of status.
func (c *Client) DeleteReservation(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/reservations/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete reservation %d: %w", id, err)
	}

	return nil
}

// ReservationsByEmail fetches the reservations booked under an email address.
func (c *Client) ReservationsByEmail(ctx context.Context, email string) ([]dto.Reservation, error) {
	reservations := []dto.Reservation{}

	path := "/api/reservations/email/" + url.PathEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &reservations); err != nil {
		return nil, fmt.Errorf("reservations by email: %w", err)
	}

	return reservations, nil
}

// ReservationsByFlight fetches the reservations held against a flight.
func (c *Client) ReservationsByFlight(ctx context.Context, flightID int64) ([]dto.Reservation, error) {
	reservations := []dto.Reservation{}

	path := fmt.Sprintf("/api/reservations/flight/%d", flightID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &reservations); err != nil {
		return nil, fmt.Errorf("reservations by flight %d: %w", flightID, err)
	}

	return reservations, nil
}
