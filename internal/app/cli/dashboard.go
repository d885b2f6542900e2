package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skylinedemo/skyline-console/internal/app/monitor"
)

func (c *Console) newDashboardCmd() *cobra.Command {
	var once bool

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Watch backend health and system info",
		Long: `Watch backend health and system info.

The dashboard fetches health and system info concurrently, then re-fetches
on a fixed interval until interrupted. A branch that fails renders as
unknown; the other branch still shows.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			m := monitor.New(c.newGateway(),
				monitor.WithPollInterval(c.cfg.Monitor.PollInterval),
				monitor.WithRepollDelay(c.cfg.Monitor.RepollDelay),
			)

			session := m.Start(ctx)
			defer session.Stop()

			// Give the first fan-out a moment to settle before rendering.
			waitForSnapshot(ctx, m, c.cfg.Backend.Timeout)
			printSnapshot(m.Snapshot())

			if once {
				return nil
			}

			ticker := time.NewTicker(c.cfg.Monitor.PollInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					fmt.Println()
					printSnapshot(m.Snapshot())
				case <-ctx.Done():
					return nil
				}
			}
		},
	}

	dashboardCmd.Flags().BoolVar(&once, "once", false, "Print one snapshot and exit")

	return dashboardCmd
}

// waitForSnapshot blocks until the first refresh has landed, the backend
// timeout has passed, or the context is cancelled.
func waitForSnapshot(ctx context.Context, m *monitor.Monitor, timeout time.Duration) {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		if !m.Snapshot().FetchedAt.IsZero() {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(50 * time.Millisecond):
		}
	}
}
