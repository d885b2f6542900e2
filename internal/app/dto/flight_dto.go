package dto

import (
	"time"
)

// Airport is static reference data, mirrored from the backend entity shape.
type Airport struct {
	Code    string `json:"airportCode"`
	Name    string `json:"airportName"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Flight is a read-only snapshot of a backend flight. Seat counts only change
// server-side; the client observes updates via re-fetch.
type Flight struct {
	ID               int64   `json:"flightId"`
	FlightNumber     string  `json:"flightNumber"`
	DepartureAirport Airport `json:"departureAirport"`
	ArrivalAirport   Airport `json:"arrivalAirport"`
	DepartureTime    string  `json:"departureTime"`
	ArrivalTime      string  `json:"arrivalTime"`
	AircraftType     string  `json:"aircraftType,omitempty"`
	TotalSeats       int     `json:"totalSeats"`
	AvailableSeats   int     `json:"availableSeats"`
	Price            float64 `json:"price"`
}

// SoldOut reports whether the flight has no seats left. Sold-out flights stay
// listed; only the reserve action is withheld.
func (f Flight) SoldOut() bool {
	return f.AvailableSeats == 0
}

// Duration returns the scheduled flight time, or zero when either timestamp
// cannot be parsed.
func (f Flight) Duration() time.Duration {
	dep, err := ParseFlightTime(f.DepartureTime)
	if err != nil {
		return 0
	}

	arr, err := ParseFlightTime(f.ArrivalTime)
	if err != nil {
		return 0
	}

	return arr.Sub(dep)
}

// ParseFlightTime accepts both RFC3339 and the backend's zone-less
// LocalDateTime rendering.
func ParseFlightTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02T15:04:05", value)
}

// SearchCriteria carries the flight search filters. All fields are optional;
// an entirely empty criteria set means "show everything" and must not trigger
// a backend call.
type SearchCriteria struct {
	From string `json:"from,omitempty" validate:"omitempty,len=3,alpha"`
	To   string `json:"to,omitempty" validate:"omitempty,len=3,alpha"`
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (c SearchCriteria) IsEmpty() bool {
	return c.From == "" && c.To == "" && c.Date == ""
}

func (c SearchCriteria) Validate() error {
	return ValidateStruct(c)
}
