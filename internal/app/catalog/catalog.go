// Package catalog holds the flight inventory snapshot and the currently
// filtered view of it.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
	"github.com/skylinedemo/skyline-console/internal/pkg/gateway"
)

// Store keeps the full flight snapshot and the visible subset side by side.
// allFlights only changes on LoadAll; visibleFlights changes on Search/Reset.
type Store struct {
	flights gateway.FlightAPI

	mu             sync.RWMutex
	allFlights     []dto.Flight
	visibleFlights []dto.Flight
	criteria       dto.SearchCriteria
}

func NewStore(flights gateway.FlightAPI) *Store {
	return &Store{
		flights: flights,
	}
}

// LoadAll fetches the full snapshot and resets the visible view to it. On
// failure the prior snapshot stays untouched.
func (s *Store) LoadAll(ctx context.Context) error {
	flights, err := s.flights.ListFlights(ctx)
	if err != nil {
		return fmt.Errorf("load flights: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.allFlights = flights
	s.visibleFlights = flights
	s.criteria = dto.SearchCriteria{}

	return nil
}

// Search filters the visible view. An entirely empty criteria set restores
// the full snapshot locally, without a backend call; anything else goes to
// the backend and the returned set replaces the view even when empty.
func (s *Store) Search(ctx context.Context, criteria dto.SearchCriteria) error {
	if criteria.IsEmpty() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.visibleFlights = s.allFlights
		s.criteria = dto.SearchCriteria{}

		return nil
	}

	if err := criteria.Validate(); err != nil {
		return err
	}

	flights, err := s.flights.SearchFlights(ctx, criteria)
	if err != nil {
		return fmt.Errorf("search flights: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.visibleFlights = flights
	s.criteria = criteria

	return nil
}

// Reset restores the visible view to the full snapshot and clears criteria.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.visibleFlights = s.allFlights
	s.criteria = dto.SearchCriteria{}
}

// All returns a copy of the unfiltered snapshot.
func (s *Store) All() []dto.Flight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyFlights(s.allFlights)
}

// Visible returns a copy of the current view.
func (s *Store) Visible() []dto.Flight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyFlights(s.visibleFlights)
}

// Criteria returns the pending search criteria, zero when none.
func (s *Store) Criteria() dto.SearchCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.criteria
}

func copyFlights(flights []dto.Flight) []dto.Flight {
	out := make([]dto.Flight, len(flights))
	copy(out, flights)

	return out
}
