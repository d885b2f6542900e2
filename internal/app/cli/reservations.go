package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
	"github.com/skylinedemo/skyline-console/internal/app/reservation"
)

func (c *Console) newReservationsCmd() *cobra.Command {
	reservationsCmd := &cobra.Command{
		Use:     "reservations",
		Aliases: []string{"res"},
		Short:   "Manage reservations",
	}

	reservationsCmd.AddCommand(
		c.newReservationsListCmd(),
		c.newReservationsCreateCmd(),
		c.newReservationsUpdateCmd(),
		c.newReservationsCancelCmd(),
		c.newReservationsDeleteCmd(),
		c.newReservationsEmailCmd(),
	)

	return reservationsCmd
}

func (c *Console) newReservationsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all reservations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			workflow := reservation.NewWorkflow(c.newGateway())
			if err := workflow.LoadAll(ctx); err != nil {
				return err
			}

			printReservations(workflow.Reservations())

			return nil
		},
	}
}

func (c *Console) newReservationsCreateCmd() *cobra.Command {
	var draft dto.ReservationDraft

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Book a new reservation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			workflow := reservation.NewWorkflow(c.newGateway())
			workflow.OpenCreate(draft.FlightID)

			if err := workflow.Submit(ctx, draft); err != nil {
				return err
			}

			fmt.Println("Reservation created.")
			printReservations(workflow.Reservations())

			return nil
		},
	}

	createCmd.Flags().Int64Var(&draft.FlightID, "flight", 0, "Flight id to book")
	createCmd.Flags().StringVar(&draft.PassengerName, "name", "", "Passenger name")
	createCmd.Flags().StringVar(&draft.PassengerEmail, "email", "", "Passenger email")
	createCmd.Flags().StringVar(&draft.PassengerPhone, "phone", "", "Passenger phone")
	createCmd.Flags().StringVar(&draft.SeatNumber, "seat", "", "Seat number")

	return createCmd
}

func (c *Console) newReservationsUpdateCmd() *cobra.Command {
	var (
		id    int64
		name  string
		email string
		phone string
		seat  string
	)

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Edit an existing reservation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			client := c.newGateway()

			existing, err := client.GetReservation(ctx, id)
			if err != nil {
				return err
			}

			workflow := reservation.NewWorkflow(client)
			session := workflow.OpenEdit(existing)

			draft := session.Draft

			if cmd.Flags().Changed("name") {
				draft.PassengerName = name
			}

			if cmd.Flags().Changed("email") {
				draft.PassengerEmail = email
			}

			if cmd.Flags().Changed("phone") {
				draft.PassengerPhone = phone
			}

			if cmd.Flags().Changed("seat") {
				draft.SeatNumber = seat
			}

			if err := workflow.Submit(ctx, draft); err != nil {
				return err
			}

			fmt.Println("Reservation updated.")
			printReservations(workflow.Reservations())

			return nil
		},
	}

	updateCmd.Flags().Int64Var(&id, "id", 0, "Reservation id")
	updateCmd.Flags().StringVar(&name, "name", "", "Passenger name")
	updateCmd.Flags().StringVar(&email, "email", "", "Passenger email")
	updateCmd.Flags().StringVar(&phone, "phone", "", "Passenger phone")
	updateCmd.Flags().StringVar(&seat, "seat", "", "Seat number")
	_ = updateCmd.MarkFlagRequired("id")

	return updateCmd
}

func (c *Console) newReservationsCancelCmd() *cobra.Command {
	var id int64

	cancelCmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a reservation (the backend decides if the transition is legal)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			workflow := reservation.NewWorkflow(c.newGateway())
			if err := workflow.CancelReservation(ctx, id); err != nil {
				return err
			}

			fmt.Println("Reservation cancelled.")
			printReservations(workflow.Reservations())

			return nil
		},
	}

	cancelCmd.Flags().Int64Var(&id, "id", 0, "Reservation id")
	_ = cancelCmd.MarkFlagRequired("id")

	return cancelCmd
}

func (c *Console) newReservationsDeleteCmd() *cobra.Command {
	var id int64

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a reservation regardless of status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			workflow := reservation.NewWorkflow(c.newGateway())
			if err := workflow.DeleteReservation(ctx, id); err != nil {
				return err
			}

			fmt.Println("Reservation deleted.")
			printReservations(workflow.Reservations())

			return nil
		},
	}

	deleteCmd.Flags().Int64Var(&id, "id", 0, "Reservation id")
	_ = deleteCmd.MarkFlagRequired("id")

	return deleteCmd
}

func (c *Console) newReservationsEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email <address>",
		Short: "List reservations booked under an email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			workflow := reservation.NewWorkflow(c.newGateway())
			if err := workflow.SearchByEmail(ctx, args[0]); err != nil {
				return err
			}

			printReservations(workflow.Reservations())

			return nil
		},
	}
}
