package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mathflow-labs/mathflow/internal/server"
)

// NewServeCommand creates the HTTP server command.
func NewServeCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve starts an HTTP server exposing the solving pipeline at
POST /api/v1/solve plus a /healthz probe. Port and request timeout come
from configuration or the --port and --timeout flags.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(server.Config{
				Solver:  app.Solver,
				Port:    app.Config.Server.Port,
				Timeout: app.Config.Server.Timeout(),
				Logger:  app.Logger,
			})
			return srv.Serve(ctx)
		},
	}
	return cmd
}
