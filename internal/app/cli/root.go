// Package cli wires the console's commands: flight search, reservation
// management, the monitoring dashboard, stress invocations, and the local
// stub backend.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/skylinedemo/skyline-console/internal/app/config"
	"github.com/skylinedemo/skyline-console/internal/pkg/gateway"
)

var (
	apiURL     string
	jsonOutput bool
)

// Console carries the loaded configuration into the commands.
type Console struct {
	cfg config.Config
}

// NewRootCmd builds the skyline command tree.
func NewRootCmd(cfg config.Config) *cobra.Command {
	console := &Console{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:   "skyline",
		Short: "Console for the Skyline demo booking service",
		Long: `skyline is a command-line console for the Skyline demo booking service.

It searches flight inventory, manages reservations, and drives the backend's
CPU/memory stress endpoints for autoscaling demonstrations.

Environment Variables:
  BACKEND_BASE_URL  Backend API URL (default: http://localhost:8080)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides BACKEND_BASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")

	rootCmd.AddCommand(
		console.newFlightsCmd(),
		console.newReservationsCmd(),
		console.newDashboardCmd(),
		console.newStressCmd(),
		console.newStubServerCmd(),
	)

	return rootCmd
}

// Execute runs the command tree and maps failure to a process exit code.
func Execute(cfg config.Config) {
	if err := NewRootCmd(cfg).Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// backendURL returns the API URL from flag or config (in priority order).
func (c *Console) backendURL() string {
	if apiURL != "" {
		return apiURL
	}

	return c.cfg.Backend.BaseURL
}

func (c *Console) newGateway() *gateway.Client {
	return gateway.New(c.backendURL(), c.cfg.Backend.Timeout)
}

func isJSONOutput() bool {
	return jsonOutput
}
