package dto

// ReservationStatus is one-way-leaning: PENDING/CONFIRMED may become
// CANCELLED, CANCELLED never becomes anything else. Delete removes the record
// regardless of status.
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationPending   ReservationStatus = "PENDING"
)

// Reservation mirrors the backend record, with the flight embedded as a
// snapshot taken at reservation time.
type Reservation struct {
	ID              int64             `json:"reservationId"`
	Flight          Flight            `json:"flight"`
	PassengerName   string            `json:"passengerName"`
	PassengerEmail  string            `json:"passengerEmail"`
	PassengerPhone  string            `json:"passengerPhone,omitempty"`
	SeatNumber      string            `json:"seatNumber,omitempty"`
	ReservationDate string            `json:"reservationDate"`
	Status          ReservationStatus `json:"status"`
}

// FlightRef references a flight by id in mutation payloads.
type FlightRef struct {
	ID int64 `json:"flightId"`
}

// ReservationRequest is the create/update payload shape the backend accepts.
type ReservationRequest struct {
	Flight         FlightRef `json:"flight"`
	PassengerName  string    `json:"passengerName"`
	PassengerEmail string    `json:"passengerEmail"`
	PassengerPhone string    `json:"passengerPhone,omitempty"`
	SeatNumber     string    `json:"seatNumber,omitempty"`
}

// ReservationDraft is the in-progress form state for a reservation being
// created or edited. Validation is advisory fast feedback; the backend stays
// authoritative for acceptance.
type ReservationDraft struct {
	FlightID       int64  `json:"flightId" validate:"required,gt=0"`
	PassengerName  string `json:"passengerName" validate:"required"`
	PassengerEmail string `json:"passengerEmail" validate:"required,email"`
	PassengerPhone string `json:"passengerPhone,omitempty"`
	SeatNumber     string `json:"seatNumber,omitempty"`
}

func (d ReservationDraft) Validate() error {
	return ValidateStruct(d)
}

// Request converts the draft into the wire payload.
func (d ReservationDraft) Request() ReservationRequest {
	return ReservationRequest{
		Flight:         FlightRef{ID: d.FlightID},
		PassengerName:  d.PassengerName,
		PassengerEmail: d.PassengerEmail,
		PassengerPhone: d.PassengerPhone,
		SeatNumber:     d.SeatNumber,
	}
}

// DraftFromReservation seeds an edit draft from an existing record.
func DraftFromReservation(r Reservation) ReservationDraft {
	return ReservationDraft{
		FlightID:       r.Flight.ID,
		PassengerName:  r.PassengerName,
		PassengerEmail: r.PassengerEmail,
		PassengerPhone: r.PassengerPhone,
		SeatNumber:     r.SeatNumber,
	}
}
