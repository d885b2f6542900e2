package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
)

// BookingService is the slice of the stub the JSON API endpoints sit on.
type BookingService interface {
	ListFlights(ctx context.Context) ([]dto.Flight, error)
	GetFlight(ctx context.Context, id int64) (dto.Flight, error)
	SearchFlights(ctx context.Context, criteria dto.SearchCriteria) ([]dto.Flight, error)
	AvailableFlights(ctx context.Context) ([]dto.Flight, error)
	FlightsByDeparture(ctx context.Context, code string) ([]dto.Flight, error)
	FlightsByArrival(ctx context.Context, code string) ([]dto.Flight, error)

	ListReservations(ctx context.Context) ([]dto.Reservation, error)
	GetReservation(ctx context.Context, id int64) (dto.Reservation, error)
	CreateReservation(ctx context.Context, req dto.ReservationRequest) (dto.Reservation, error)
	UpdateReservation(ctx context.Context, id int64, req dto.ReservationRequest) (dto.Reservation, error)
	CancelReservation(ctx context.Context, id int64) error
	DeleteReservation(ctx context.Context, id int64) error
	ReservationsByEmail(ctx context.Context, email string) ([]dto.Reservation, error)
	ReservationsByFlight(ctx context.Context, flightID int64) ([]dto.Reservation, error)
}

// IDRequest addresses a single resource by numeric id.
type IDRequest struct {
	ID int64
}

// CodeRequest addresses flights by airport code.
type CodeRequest struct {
	Code string
}

// EmailRequest addresses reservations by passenger email.
type EmailRequest struct {
	Email string
}

// UpdateReservationRequest pairs the target id with the replacement fields.
type UpdateReservationRequest struct {
	ID      int64
	Request dto.ReservationRequest
}

// Endpoints bundles the JSON API surface of the stub backend.
type Endpoints struct {
	ListFlights        endpoint.Endpoint
	GetFlight          endpoint.Endpoint
	SearchFlights      endpoint.Endpoint
	AvailableFlights   endpoint.Endpoint
	FlightsByDeparture endpoint.Endpoint
	FlightsByArrival   endpoint.Endpoint

	ListReservations     endpoint.Endpoint
	GetReservation       endpoint.Endpoint
	CreateReservation    endpoint.Endpoint
	UpdateReservation    endpoint.Endpoint
	CancelReservation    endpoint.Endpoint
	DeleteReservation    endpoint.Endpoint
	ReservationsByEmail  endpoint.Endpoint
	ReservationsByFlight endpoint.Endpoint
}

func MakeEndpoints(svc BookingService) Endpoints {
	return Endpoints{
		ListFlights: func(ctx context.Context, _ interface{}) (interface{}, error) {
			return svc.ListFlights(ctx)
		},
		GetFlight: func(ctx context.Context, req interface{}) (interface{}, error) {
			request, err := as[IDRequest](req)
			if err != nil {
				return nil, err
			}

			return svc.GetFlight(ctx, request.ID)
		},
		SearchFlights: func(ctx context.Context, req interface{}) (interface{}, error) {
			request, err := as[dto.SearchCriteria](req)
			if err != nil {
				return nil, err
			}

			return svc.SearchFlights(ctx, request)
		},
		AvailableFlights: func(ctx context.Context, _ interface{}) (interface{}, error) {
			return svc.AvailableFlights(ctx)
		},
		FlightsByDeparture: func(ctx context.Context, req interface{}) (interface{}, error) {
			request, err := as[CodeRequest](req)
			if err != nil {
				return nil, err
			}

			return svc.FlightsByDeparture(ctx, request.Code)
		},
		FlightsByArrival: func(ctx context.Context, req interface{}) (interface{}, error) {
			request, err := as[CodeRequest](req)
			if err != nil {
				return nil, err
			}

			return svc.FlightsByArrival(ctx, request.Code)
		},
		ListReservations: func(ctx context.Context, _ interface{}) (interface{}, error) {
			return svc.ListReservations(ctx)
		},
		GetReservation: func(ctx context.Context, req interface{}) (interface{}, error) {
			request, err := as[IDRequest](req)
			if err != nil {
				return nil, err
			}

			return svc.GetReservation(ctx, request.ID)
		},
		CreateReservation: func(ctx context.Context, req interface{}) (interface{}, error) {
			request, err := as[dto.ReservationRequest](req)
			if err != nil {
				return nil, err
			}

			return svc.CreateReservation(ctx, request)
		},
		UpdateReservation: func(ctx context.Context, req interface{}) (interface{}, error) {
			request, err := as[UpdateReservationRequest](req)
			if err != nil {
				return nil, err
			}

			return svc.UpdateReservation(ctx, request.ID, request.Request)
		},
		CancelReservation: func(ctx context.Context, req interface{}) (interface{}, error) {
			request, err := as[IDRequest](req)
			if err != nil {
				return nil, err
			}

			return nil, svc.CancelReservation(ctx, request.ID)
		},
		DeleteReservation: func(ctx context.Context, req interface{}) (interface{}, error) {
			request, err := as[IDRequest](req)
			if err != nil {
				return nil, err
			}

			return nil, svc.DeleteReservation(ctx, request.ID)
		},
		ReservationsByEmail: func(ctx context.Context, req interface{}) (interface{}, error) {
			request, err := as[EmailRequest](req)
			if err != nil {
				return nil, err
			}

			return svc.ReservationsByEmail(ctx, request.Email)
		},
		ReservationsByFlight: func(ctx context.Context, req interface{}) (interface{}, error) {
			request, err := as[IDRequest](req)
			if err != nil {
				return nil, err
			}

			return svc.ReservationsByFlight(ctx, request.ID)
		},
	}
}

func as[T any](req interface{}) (T, error) {
	request, ok := req.(T)
	if !ok {
		var zero T

		return zero, fmt.Errorf("%w: %T", errInvalidRequestType, req)
	}

	return request, nil
}

var errInvalidRequestType = errors.New("invalid request type")
