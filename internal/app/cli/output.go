package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
	"github.com/skylinedemo/skyline-console/internal/app/monitor"
	"github.com/skylinedemo/skyline-console/internal/app/reservation"
	"github.com/skylinedemo/skyline-console/internal/pkg/exception"
	"github.com/skylinedemo/skyline-console/internal/pkg/utils"
)

func printJSON(v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}

// printError renders a failure as a human-readable notice, keeping the
// distinction between local validation, backend refusal, and transport
// failure visible.
func printError(err error) {
	var (
		valErr exception.ValidationError
		bizErr exception.BusinessError
		reqErr exception.RequestError
	)

	switch {
	case errors.As(err, &valErr):
		fmt.Fprintf(os.Stderr, "Invalid input: %s\n", valErr.Error())
	case errors.As(err, &bizErr):
		fmt.Fprintf(os.Stderr, "Rejected by backend: %s\n", bizErr.Message)
	case errors.As(err, &reqErr):
		fmt.Fprintf(os.Stderr, "Backend unreachable: %s\n", reqErr.Error())
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func printFlights(flights []dto.Flight) {
	if isJSONOutput() {
		printJSON(flights)

		return
	}

	if len(flights) == 0 {
		fmt.Println("No flights match.")

		return
	}

	for _, f := range flights {
		soldOut := ""
		if f.SoldOut() {
			soldOut = "  [SOLD OUT]"
		}

		fmt.Printf("%-6d %-7s %s → %s  %s  %s  %s  seats %d/%d%s\n",
			f.ID,
			f.FlightNumber,
			f.DepartureAirport.Code,
			f.ArrivalAirport.Code,
			f.DepartureTime,
			utils.FormatDuration(f.Duration()),
			utils.FormatWon(int64(f.Price)),
			f.AvailableSeats,
			f.TotalSeats,
			soldOut)
	}
}

func printReservations(reservations []dto.Reservation) {
	if isJSONOutput() {
		printJSON(reservations)

		return
	}

	if len(reservations) == 0 {
		fmt.Println("No reservations.")

		return
	}

	for _, r := range reservations {
		actions := allowedActionNames(r)

		fmt.Printf("%-6d %-9s %-7s %s → %s  %s <%s>  seat %s  [%s]\n",
			r.ID,
			r.Status,
			r.Flight.FlightNumber,
			r.Flight.DepartureAirport.Code,
			r.Flight.ArrivalAirport.Code,
			r.PassengerName,
			r.PassengerEmail,
			valueOrDash(r.SeatNumber),
			strings.Join(actions, ", "))
	}
}

func allowedActionNames(r dto.Reservation) []string {
	allowed := reservation.AllowedActions(r)
	names := make([]string, 0, len(allowed))

	for _, action := range []reservation.Action{
		reservation.ActionEdit,
		reservation.ActionCancel,
		reservation.ActionDelete,
	} {
		if allowed[action] {
			names = append(names, string(action))
		}
	}

	return names
}

func printSnapshot(s monitor.Snapshot) {
	if isJSONOutput() {
		printJSON(snapshotView(s))

		return
	}

	fmt.Printf("Fetched: %s\n", s.FetchedAt.Format("15:04:05"))

	if s.HealthKnown {
		fmt.Printf("Health:  %s (version %s), database %s (%s)\n",
			s.Health.Status, s.Health.Version,
			s.Health.Database.Status, s.Health.Database.Type)
	} else {
		fmt.Println("Health:  unknown/unavailable")
	}

	if s.InfoKnown {
		fmt.Printf("System:  %d cores, memory %d/%d MB used (%d%%), %d MB free (%d%%)\n",
			s.Info.Processors,
			s.Info.UsedMemoryMB, s.Info.TotalMemoryMB, s.Info.UsagePercent(),
			s.Info.FreeMemoryMB, s.Info.AvailablePercent())
	} else {
		fmt.Println("System:  unknown/unavailable")
	}
}

func snapshotView(s monitor.Snapshot) map[string]interface{} {
	view := map[string]interface{}{
		"fetched_at": s.FetchedAt,
	}

	if s.HealthKnown {
		view["health"] = s.Health
	}

	if s.InfoKnown {
		view["system_info"] = s.Info
		view["memory_usage_percent"] = s.Info.UsagePercent()
		view["memory_available_percent"] = s.Info.AvailablePercent()
	}

	return view
}

func valueOrDash(v string) string {
	if v == "" {
		return "-"
	}

	return v
}
