package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/skylinedemo/skyline-console/internal/app/endpoints"
	"github.com/skylinedemo/skyline-console/internal/app/stub"
	"github.com/skylinedemo/skyline-console/internal/app/transport"
)

func (c *Console) newStubServerCmd() *cobra.Command {
	var port int

	stubCmd := &cobra.Command{
		Use:   "stub-server",
		Short: "Run a local fixture backend implementing the Skyline API",
		Long: `Run a local fixture backend implementing the Skyline API.

The stub serves the full contract (flights, reservations, health, stress)
from in-memory data, so the console can be demoed without the real backend.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			service := stub.NewService()
			router := transport.MakeHTTPRouter(endpoints.MakeEndpoints(service), service)

			server := &http.Server{
				Handler:      router,
				Addr:         fmt.Sprintf(":%d", port),
				ReadTimeout:  c.cfg.Stub.Timeout,
				WriteTimeout: c.cfg.Stub.Timeout,
			}

			slog.Info("running stub backend...", slog.Int("port", port))

			errCh := make(chan error, 1)

			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("stub backend: %w", err)
			case <-ctx.Done():
			}

			if err := server.Shutdown(cmd.Context()); err != nil {
				return fmt.Errorf("shutdown stub backend: %w", err)
			}

			slog.Info("stub backend shutdown gracefully")

			return nil
		},
	}

	stubCmd.Flags().IntVar(&port, "port", c.cfg.Stub.Port, "Port to listen on")

	return stubCmd
}
