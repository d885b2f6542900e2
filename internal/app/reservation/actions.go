package reservation

import "github.com/skylinedemo/skyline-console/internal/app/dto"

// Action is a UI affordance over a reservation row.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionCancel Action = "cancel"
	ActionDelete Action = "delete"
)

// AllowedActions derives which actions the presentation layer should offer
// for a reservation. Cancel is withheld for records that are already
// CANCELLED; delete is always available. This is display guidance only — the
// workflow does not re-check status before issuing mutations.
func AllowedActions(r dto.Reservation) map[Action]bool {
	actions := map[Action]bool{
		ActionEdit:   true,
		ActionDelete: true,
	}

	if r.Status != dto.ReservationCancelled {
		actions[ActionCancel] = true
	}

	return actions
}
