// Package stub is an in-process fixture implementation of the Skyline
// backend contract. It lets the console run and be tested without the real
// API server; the authoritative backend remains an external collaborator.
package stub

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
	"github.com/skylinedemo/skyline-console/internal/pkg/airports"
	"github.com/skylinedemo/skyline-console/internal/pkg/exception"
)

const timeLayout = "2006-01-02T15:04:05"

// Service holds the fixture flight and reservation tables. Seat counts
// mutate on reservation create/cancel, the same way the real backend does.
type Service struct {
	mu                sync.RWMutex
	flights           []*dto.Flight
	reservations      map[int64]*dto.Reservation
	nextReservationID int64
	memoryHold        time.Duration
}

// Option tweaks stub behavior, mainly for tests.
type Option func(*Service)

// WithMemoryHold overrides how long the memory stress keeps its allocation
// alive before releasing it.
func WithMemoryHold(d time.Duration) Option {
	return func(s *Service) {
		s.memoryHold = d
	}
}

func NewService(opts ...Option) *Service {
	s := &Service{
		reservations:      make(map[int64]*dto.Reservation),
		nextReservationID: 1,
		memoryHold:        2 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.flights = seedFlights(time.Now())

	return s
}

// seedFlights builds the demo inventory: one round trip per route, departing
// over the next few days.
func seedFlights(base time.Time) []*dto.Flight {
	routes := []struct {
		from, to string
		number   string
		hours    int
		price    float64
	}{
		{"ICN", "NRT", "SK101", 2, 285000},
		{"NRT", "ICN", "SK102", 2, 295000},
		{"ICN", "KIX", "SK201", 2, 245000},
		{"KIX", "ICN", "SK202", 2, 255000},
		{"GMP", "CJU", "SK301", 1, 95000},
		{"CJU", "GMP", "SK302", 1, 89000},
		{"ICN", "BKK", "SK401", 6, 485000},
		{"BKK", "ICN", "SK402", 6, 465000},
		{"ICN", "SIN", "SK501", 6, 525000},
		{"SIN", "ICN", "SK502", 6, 545000},
		{"ICN", "LAX", "SK601", 11, 1250000},
		{"LAX", "ICN", "SK602", 13, 1180000},
	}

	day := base.Truncate(24 * time.Hour)
	flights := make([]*dto.Flight, 0, len(routes))

	for i, r := range routes {
		from, _ := airports.ByCode(r.from)
		to, _ := airports.ByCode(r.to)

		departure := day.AddDate(0, 0, 1+i/4).Add(time.Duration(8+i%4*3) * time.Hour)
		arrival := departure.Add(time.Duration(r.hours) * time.Hour)

		flights = append(flights, &dto.Flight{
			ID:               int64(i + 1),
			FlightNumber:     r.number,
			DepartureAirport: from,
			ArrivalAirport:   to,
			DepartureTime:    departure.Format(timeLayout),
			ArrivalTime:      arrival.Format(timeLayout),
			AircraftType:     "A321neo",
			TotalSeats:       180,
			AvailableSeats:   180,
			Price:            r.price,
		})
	}

	return flights
}

func notFound(kind string, id int64) error {
	return exception.BusinessError{
		Message:    fmt.Sprintf("%s %d not found", kind, id),
		StatusCode: http.StatusNotFound,
	}
}

// ListFlights returns the full inventory snapshot.
func (s *Service) ListFlights(_ context.Context) ([]dto.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyFlights(func(*dto.Flight) bool { return true }), nil
}

// GetFlight returns a single flight.
func (s *Service) GetFlight(_ context.Context, id int64) (dto.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f := s.findFlight(id)
	if f == nil {
		return dto.Flight{}, notFound("flight", id)
	}

	return *f, nil
}

// SearchFlights filters by origin, destination and departure date.
func (s *Service) SearchFlights(_ context.Context, criteria dto.SearchCriteria) ([]dto.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyFlights(func(f *dto.Flight) bool {
		if criteria.From != "" && !strings.EqualFold(f.DepartureAirport.Code, criteria.From) {
			return false
		}

		if criteria.To != "" && !strings.EqualFold(f.ArrivalAirport.Code, criteria.To) {
			return false
		}

		if criteria.Date != "" && !strings.HasPrefix(f.DepartureTime, criteria.Date) {
			return false
		}

		return true
	}), nil
}

// AvailableFlights returns flights that still have seats.
func (s *Service) AvailableFlights(_ context.Context) ([]dto.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyFlights(func(f *dto.Flight) bool { return f.AvailableSeats > 0 }), nil
}

// FlightsByDeparture returns flights leaving the given airport.
func (s *Service) FlightsByDeparture(_ context.Context, code string) ([]dto.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyFlights(func(f *dto.Flight) bool {
		return strings.EqualFold(f.DepartureAirport.Code, code)
	}), nil
}

// FlightsByArrival returns flights landing at the given airport.
func (s *Service) FlightsByArrival(_ context.Context, code string) ([]dto.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyFlights(func(f *dto.Flight) bool {
		return strings.EqualFold(f.ArrivalAirport.Code, code)
	}), nil
}

// ListReservations returns all reservations.
func (s *Service) ListReservations(_ context.Context) ([]dto.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyReservations(func(*dto.Reservation) bool { return true }), nil
}

// GetReservation returns a single reservation.
func (s *Service) GetReservation(_ context.Context, id int64) (dto.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reservations[id]
	if !ok {
		return dto.Reservation{}, notFound("reservation", id)
	}

	return *r, nil
}

// CreateReservation books a seat. Refusals (unknown flight, sold out) carry
// a 400 with a message, mirroring the real backend.
func (s *Service) CreateReservation(_ context.Context, req dto.ReservationRequest) (dto.Reservation, error) {
	if err := validateRequest(req); err != nil {
		return dto.Reservation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	flight := s.findFlight(req.Flight.ID)
	if flight == nil {
		return dto.Reservation{}, notFound("flight", req.Flight.ID)
	}

	if flight.AvailableSeats <= 0 {
		return dto.Reservation{}, exception.BusinessError{
			Message:    "no seats available on flight " + flight.FlightNumber,
			StatusCode: http.StatusBadRequest,
		}
	}

	flight.AvailableSeats--

	r := &dto.Reservation{
		ID:              s.nextReservationID,
		Flight:          *flight,
		PassengerName:   req.PassengerName,
		PassengerEmail:  req.PassengerEmail,
		PassengerPhone:  req.PassengerPhone,
		SeatNumber:      req.SeatNumber,
		ReservationDate: time.Now().Format(timeLayout),
		Status:          dto.ReservationConfirmed,
	}

	s.nextReservationID++
	s.reservations[r.ID] = r

	return *r, nil
}

// UpdateReservation replaces passenger/seat fields of an existing record.
// The flight reference is immutable after booking.
func (s *Service) UpdateReservation(_ context.Context, id int64, req dto.ReservationRequest) (dto.Reservation, error) {
	if err := validateRequest(req); err != nil {
		return dto.Reservation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return dto.Reservation{}, notFound("reservation", id)
	}

	r.PassengerName = req.PassengerName
	r.PassengerEmail = req.PassengerEmail
	r.PassengerPhone = req.PassengerPhone
	r.SeatNumber = req.SeatNumber

	return *r, nil
}

// CancelReservation moves a record to CANCELLED and returns the seat to the
// flight. Cancelling twice is a refusal: CANCELLED is terminal.
func (s *Service) CancelReservation(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return notFound("reservation", id)
	}

	if r.Status == dto.ReservationCancelled {
		return exception.BusinessError{
			Message:    fmt.Sprintf("reservation %d is already cancelled", id),
			StatusCode: http.StatusBadRequest,
		}
	}

	r.Status = dto.ReservationCancelled

	if flight := s.findFlight(r.Flight.ID); flight != nil && flight.AvailableSeats < flight.TotalSeats {
		flight.AvailableSeats++
	}

	return nil
}

// DeleteReservation removes the record regardless of status. An active
// reservation gives its seat back on the way out.
func (s *Service) DeleteReservation(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return notFound("reservation", id)
	}

	if r.Status != dto.ReservationCancelled {
		if flight := s.findFlight(r.Flight.ID); flight != nil && flight.AvailableSeats < flight.TotalSeats {
			flight.AvailableSeats++
		}
	}

	delete(s.reservations, id)

	return nil
}

// ReservationsByEmail filters by passenger email, case-insensitively.
func (s *Service) ReservationsByEmail(_ context.Context, email string) ([]dto.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyReservations(func(r *dto.Reservation) bool {
		return strings.EqualFold(r.PassengerEmail, email)
	}), nil
}

// ReservationsByFlight filters by flight id.
func (s *Service) ReservationsByFlight(_ context.Context, flightID int64) ([]dto.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyReservations(func(r *dto.Reservation) bool {
		return r.Flight.ID == flightID
	}), nil
}

func validateRequest(req dto.ReservationRequest) error {
	switch {
	case req.Flight.ID <= 0:
		return exception.BusinessError{Message: "flight is required", StatusCode: http.StatusBadRequest}
	case strings.TrimSpace(req.PassengerName) == "":
		return exception.BusinessError{Message: "passengerName is required", StatusCode: http.StatusBadRequest}
	case !strings.Contains(req.PassengerEmail, "@"):
		return exception.BusinessError{Message: "passengerEmail is invalid", StatusCode: http.StatusBadRequest}
	}

	return nil
}

func (s *Service) findFlight(id int64) *dto.Flight {
	for _, f := range s.flights {
		if f.ID == id {
			return f
		}
	}

	return nil
}

func (s *Service) copyFlights(keep func(*dto.Flight) bool) []dto.Flight {
	out := []dto.Flight{}

	for _, f := range s.flights {
		if keep(f) {
			out = append(out, *f)
		}
	}

	return out
}

func (s *Service) copyReservations(keep func(*dto.Reservation) bool) []dto.Reservation {
	out := []dto.Reservation{}

	for _, r := range s.reservations {
		if keep(r) {
			out = append(out, *r)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}
