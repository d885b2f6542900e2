package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skylinedemo/skyline-console/internal/app/catalog"
	"github.com/skylinedemo/skyline-console/internal/app/dto"
)

func (c *Console) newFlightsCmd() *cobra.Command {
	flightsCmd := &cobra.Command{
		Use:   "flights",
		Short: "Browse and search flight inventory",
	}

	flightsCmd.AddCommand(
		c.newFlightsListCmd(),
		c.newFlightsSearchCmd(),
		c.newFlightsAvailableCmd(),
	)

	return flightsCmd
}

func (c *Console) newFlightsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the full flight snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			store := catalog.NewStore(c.newGateway())
			if err := store.LoadAll(ctx); err != nil {
				return err
			}

			printFlights(store.Visible())

			return nil
		},
	}
}

func (c *Console) newFlightsSearchCmd() *cobra.Command {
	var criteria dto.SearchCriteria

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Filter flights by origin, destination and date",
		Long: `Filter flights by origin, destination and date.

With no filters the full loaded snapshot is shown without another backend
round trip.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			store := catalog.NewStore(c.newGateway())
			if err := store.LoadAll(ctx); err != nil {
				return err
			}

			if err := store.Search(ctx, criteria); err != nil {
				return err
			}

			printFlights(store.Visible())

			return nil
		},
	}

	searchCmd.Flags().StringVar(&criteria.From, "from", "", "Departure airport code (e.g. ICN)")
	searchCmd.Flags().StringVar(&criteria.To, "to", "", "Arrival airport code (e.g. NRT)")
	searchCmd.Flags().StringVar(&criteria.Date, "date", "", "Departure date (YYYY-MM-DD)")

	return searchCmd
}

func (c *Console) newFlightsAvailableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "List flights that still have seats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			flights, err := c.newGateway().AvailableFlights(ctx)
			if err != nil {
				return err
			}

			printFlights(flights)

			return nil
		},
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
