// Package reservation manages the reservation list, the create/edit editing
// session, and the mutation side effects against the backend.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
	"github.com/skylinedemo/skyline-console/internal/pkg/exception"
	"github.com/skylinedemo/skyline-console/internal/pkg/gateway"
)

// Mode distinguishes a create session from an edit session.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Session is the open editing state: which mode, which draft, and for edits,
// which reservation is being replaced.
type Session struct {
	Mode          Mode
	Draft         dto.ReservationDraft
	ReservationID int64
}

// ErrEmptyEmail reports a blank email search as a user-input warning rather
// than a request failure. No backend call is made.
var ErrEmptyEmail = exception.ValidationError{
	Field:  "email",
	Reason: "email must not be blank",
}

// ErrMutationInFlight guards against double-submitting the same logical
// mutation while one is still pending.
var ErrMutationInFlight = errors.New("a reservation mutation is already in flight")

// Workflow owns the in-memory reservation list (a cache of backend state,
// invalidated by re-fetch after every mutation) and at most one editing
// session at a time.
type Workflow struct {
	api gateway.ReservationAPI

	mu           sync.RWMutex
	reservations []dto.Reservation
	session      *Session
	busy         bool
}

func NewWorkflow(api gateway.ReservationAPI) *Workflow {
	return &Workflow{
		api: api,
	}
}

// LoadAll refreshes the reservation list from the backend. On failure the
// prior list stays untouched.
func (w *Workflow) LoadAll(ctx context.Context) error {
	reservations, err := w.api.ListReservations(ctx)
	if err != nil {
		return fmt.Errorf("load reservations: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.reservations = reservations

	return nil
}

// Reservations returns a copy of the cached list.
func (w *Workflow) Reservations() []dto.Reservation {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]dto.Reservation, len(w.reservations))
	copy(out, w.reservations)

	return out
}

// OpenCreate starts a create session. A non-zero flight id seeds the draft;
// availability is not checked here, the backend validates on submit.
func (w *Workflow) OpenCreate(preselectedFlightID int64) Session {
	w.mu.Lock()
	defer w.mu.Unlock()

	session := Session{
		Mode: ModeCreate,
		Draft: dto.ReservationDraft{
			FlightID: preselectedFlightID,
		},
	}
	w.session = &session

	return session
}

// OpenEdit starts an edit session seeded from the existing record.
func (w *Workflow) OpenEdit(r dto.Reservation) Session {
	w.mu.Lock()
	defer w.mu.Unlock()

	session := Session{
		Mode:          ModeEdit,
		Draft:         dto.DraftFromReservation(r),
		ReservationID: r.ID,
	}
	w.session = &session

	return session
}

// Session returns the open editing session, if any.
func (w *Workflow) Session() (Session, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.session == nil {
		return Session{}, false
	}

	return *w.session, true
}

// CancelSession abandons the open editing session and discards its draft.
// Distinct from cancelling a reservation.
func (w *Workflow) CancelSession() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.session = nil
}

// Submit validates the draft locally, then issues the create or update call
// for the open session. On success the session closes and the list reloads;
// on failure the session stays open with the draft intact so the user can
// retry.
func (w *Workflow) Submit(ctx context.Context, draft dto.ReservationDraft) error {
	w.mu.Lock()

	if w.session == nil {
		w.mu.Unlock()

		return errors.New("no editing session is open")
	}

	if w.busy {
		w.mu.Unlock()

		return ErrMutationInFlight
	}

	// Keep the latest draft so a failed submit does not lose user input.
	w.session.Draft = draft
	session := *w.session
	w.busy = true
	w.mu.Unlock()

	defer w.clearBusy()

	if err := draft.Validate(); err != nil {
		return err
	}

	var err error

	switch session.Mode {
	case ModeEdit:
		_, err = w.api.UpdateReservation(ctx, session.ReservationID, draft.Request())
	default:
		_, err = w.api.CreateReservation(ctx, draft.Request())
	}

	if err != nil {
		return fmt.Errorf("submit reservation: %w", err)
	}

	w.mu.Lock()
	w.session = nil
	w.mu.Unlock()

	return w.LoadAll(ctx)
}

// CancelReservation issues the cancel mutation and reloads the list on
// success. The backend is authoritative about whether the transition is
// legal; no local status check is made.
func (w *Workflow) CancelReservation(ctx context.Context, id int64) error {
	if !w.setBusy() {
		return ErrMutationInFlight
	}
	defer w.clearBusy()

	if err := w.api.CancelReservation(ctx, id); err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}

	return w.LoadAll(ctx)
}

// DeleteReservation removes the record regardless of status and reloads the
// list on success.
func (w *Workflow) DeleteReservation(ctx context.Context, id int64) error {
	if !w.setBusy() {
		return ErrMutationInFlight
	}
	defer w.clearBusy()

	if err := w.api.DeleteReservation(ctx, id); err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}

	return w.LoadAll(ctx)
}

// SearchByEmail replaces the visible list with the backend's filtered result.
// A blank email is a local warning; the list stays as it was and nothing is
// sent.
func (w *Workflow) SearchByEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}

	reservations, err := w.api.ReservationsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("search reservations by email: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.reservations = reservations

	return nil
}

func (w *Workflow) setBusy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.busy {
		return false
	}

	w.busy = true

	return true
}

func (w *Workflow) clearBusy() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.busy = false
}
