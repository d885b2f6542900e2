//go:build unit

package reservation

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
	"github.com/skylinedemo/skyline-console/internal/pkg/exception"
)

func TestMain(m *testing.M) {
	if err := dto.InitValidator(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

type MockReservationAPI struct {
	mock.Mock
}

func (m *MockReservationAPI) ListReservations(ctx context.Context) ([]dto.Reservation, error) {
	args := m.Called(ctx)

	reservations, _ := args.Get(0).([]dto.Reservation)

	return reservations, args.Error(1)
}

func (m *MockReservationAPI) GetReservation(ctx context.Context, id int64) (dto.Reservation, error) {
	args := m.Called(ctx, id)

	reservation, _ := args.Get(0).(dto.Reservation)

	return reservation, args.Error(1)
}

func (m *MockReservationAPI) CreateReservation(ctx context.Context, req dto.ReservationRequest) (dto.Reservation, error) {
	args := m.Called(ctx, req)

	reservation, _ := args.Get(0).(dto.Reservation)

	return reservation, args.Error(1)
}

func (m *MockReservationAPI) UpdateReservation(ctx context.Context, id int64, req dto.ReservationRequest) (dto.Reservation, error) {
	args := m.Called(ctx, id, req)

	reservation, _ := args.Get(0).(dto.Reservation)

	return reservation, args.Error(1)
}

func (m *MockReservationAPI) CancelReservation(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReservationAPI) DeleteReservation(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReservationAPI) ReservationsByEmail(ctx context.Context, email string) ([]dto.Reservation, error) {
	args := m.Called(ctx, email)

	reservations, _ := args.Get(0).([]dto.Reservation)

	return reservations, args.Error(1)
}

func (m *MockReservationAPI) ReservationsByFlight(ctx context.Context, flightID int64) ([]dto.Reservation, error) {
	args := m.Called(ctx, flightID)

	reservations, _ := args.Get(0).([]dto.Reservation)

	return reservations, args.Error(1)
}

func validDraft() dto.ReservationDraft {
	return dto.ReservationDraft{
		FlightID:       7,
		PassengerName:  "Jihoon Park",
		PassengerEmail: "jihoon@example.com",
		SeatNumber:     "12A",
	}
}

func TestWorkflow_Submit(t *testing.T) {
	t.Run("malformed_email_rejected_before_network", func(t *testing.T) {
		api := &MockReservationAPI{}

		w := NewWorkflow(api)
		w.OpenCreate(0)

		draft := validDraft()
		draft.PassengerEmail = "not-an-email"

		err := w.Submit(context.Background(), draft)

		var ve exception.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "passengerEmail", ve.Field)

		api.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)

		// Session stays open with the rejected draft so the user can fix it.
		session, open := w.Session()
		assert.True(t, open)
		assert.Equal(t, draft, session.Draft)
	})

	t.Run("create_closes_session_and_reloads", func(t *testing.T) {
		draft := validDraft()

		api := &MockReservationAPI{}
		api.On("CreateReservation", mock.Anything, draft.Request()).
			Return(dto.Reservation{ID: 1}, nil)
		api.On("ListReservations", mock.Anything).
			Return([]dto.Reservation{{ID: 1, Status: dto.ReservationConfirmed}}, nil)

		w := NewWorkflow(api)
		w.OpenCreate(draft.FlightID)

		assert.NoError(t, w.Submit(context.Background(), draft))

		_, open := w.Session()
		assert.False(t, open)
		assert.Len(t, w.Reservations(), 1)
	})

	t.Run("edit_uses_update_call", func(t *testing.T) {
		existing := dto.Reservation{
			ID:             42,
			Flight:         dto.Flight{ID: 7},
			PassengerName:  "Jihoon Park",
			PassengerEmail: "jihoon@example.com",
			Status:         dto.ReservationConfirmed,
		}

		draft := dto.DraftFromReservation(existing)
		draft.SeatNumber = "14C"

		api := &MockReservationAPI{}
		api.On("UpdateReservation", mock.Anything, int64(42), draft.Request()).
			Return(existing, nil)
		api.On("ListReservations", mock.Anything).
			Return([]dto.Reservation{existing}, nil)

		w := NewWorkflow(api)
		w.OpenEdit(existing)

		assert.NoError(t, w.Submit(context.Background(), draft))

		api.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
	})

	t.Run("backend_failure_keeps_session_open", func(t *testing.T) {
		draft := validDraft()

		api := &MockReservationAPI{}
		api.On("CreateReservation", mock.Anything, draft.Request()).
			Return(nil, exception.BusinessError{Message: "flight is sold out", StatusCode: 400})

		w := NewWorkflow(api)
		w.OpenCreate(draft.FlightID)

		err := w.Submit(context.Background(), draft)
		assert.Error(t, err)

		var be exception.BusinessError
		assert.ErrorAs(t, err, &be)

		session, open := w.Session()
		assert.True(t, open)
		assert.Equal(t, draft, session.Draft)

		api.AssertNotCalled(t, "ListReservations", mock.Anything)
	})

	t.Run("no_open_session_is_an_error", func(t *testing.T) {
		w := NewWorkflow(&MockReservationAPI{})

		assert.Error(t, w.Submit(context.Background(), validDraft()))
	})
}

func TestWorkflow_CancelSession(t *testing.T) {
	w := NewWorkflow(&MockReservationAPI{})
	w.OpenCreate(3)

	w.CancelSession()

	_, open := w.Session()
	assert.False(t, open)
}

func TestWorkflow_CancelReservation(t *testing.T) {
	t.Run("success_reloads_list", func(t *testing.T) {
		api := &MockReservationAPI{}
		api.On("CancelReservation", mock.Anything, int64(8)).Return(nil)
		api.On("ListReservations", mock.Anything).
			Return([]dto.Reservation{{ID: 8, Status: dto.ReservationCancelled}}, nil)

		w := NewWorkflow(api)

		assert.NoError(t, w.CancelReservation(context.Background(), 8))
		assert.Equal(t, dto.ReservationCancelled, w.Reservations()[0].Status)
	})

	t.Run("backend_rejection_surfaces_unchanged", func(t *testing.T) {
		api := &MockReservationAPI{}
		api.On("CancelReservation", mock.Anything, int64(8)).
			Return(exception.BusinessError{Message: "reservation is already cancelled", StatusCode: 400})

		w := NewWorkflow(api)

		err := w.CancelReservation(context.Background(), 8)

		var be exception.BusinessError
		assert.ErrorAs(t, err, &be)

		api.AssertNotCalled(t, "ListReservations", mock.Anything)
	})
}

func TestWorkflow_DeleteReservation(t *testing.T) {
	api := &MockReservationAPI{}
	api.On("DeleteReservation", mock.Anything, int64(8)).Return(nil)
	api.On("ListReservations", mock.Anything).Return([]dto.Reservation{}, nil)

	w := NewWorkflow(api)

	assert.NoError(t, w.DeleteReservation(context.Background(), 8))
	assert.Empty(t, w.Reservations())
}

func TestWorkflow_SearchByEmail(t *testing.T) {
	t.Run("blank_email_is_local_warning", func(t *testing.T) {
		api := &MockReservationAPI{}

		w := NewWorkflow(api)

		err := w.SearchByEmail(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrEmptyEmail)

		api.AssertNotCalled(t, "ReservationsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("result_replaces_list", func(t *testing.T) {
		api := &MockReservationAPI{}
		api.On("ReservationsByEmail", mock.Anything, "jihoon@example.com").
			Return([]dto.Reservation{{ID: 5}}, nil)

		w := NewWorkflow(api)

		assert.NoError(t, w.SearchByEmail(context.Background(), " jihoon@example.com "))
		assert.Len(t, w.Reservations(), 1)
	})
}

func TestWorkflow_BusyGuard(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	api := &MockReservationAPI{}
	api.On("DeleteReservation", mock.Anything, int64(1)).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil)
	api.On("ListReservations", mock.Anything).Return([]dto.Reservation{}, nil)

	w := NewWorkflow(api)

	done := make(chan error, 1)
	go func() {
		done <- w.DeleteReservation(context.Background(), 1)
	}()

	<-started

	assert.ErrorIs(t, w.CancelReservation(context.Background(), 2), ErrMutationInFlight)

	close(release)
	assert.NoError(t, <-done)
}

func TestAllowedActions(t *testing.T) {
	tests := []struct {
		name        string
		reservation dto.Reservation
		want        map[Action]bool
	}{
		{
			name:        "confirmed_has_all_actions",
			reservation: dto.Reservation{Status: dto.ReservationConfirmed},
			want:        map[Action]bool{ActionEdit: true, ActionCancel: true, ActionDelete: true},
		},
		{
			name:        "pending_has_all_actions",
			reservation: dto.Reservation{Status: dto.ReservationPending},
			want:        map[Action]bool{ActionEdit: true, ActionCancel: true, ActionDelete: true},
		},
		{
			name:        "cancelled_loses_cancel",
			reservation: dto.Reservation{Status: dto.ReservationCancelled},
			want:        map[Action]bool{ActionEdit: true, ActionDelete: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedActions(tt.reservation))
		})
	}
}

func TestErrEmptyEmail_Identity(t *testing.T) {
	assert.True(t, exception.IsValidationError(ErrEmptyEmail))
	assert.False(t, errors.Is(ErrEmptyEmail, ErrMutationInFlight))
}
