// Package commands implements the mathflow subcommands.
package commands

import (
	"log/slog"

	"github.com/mathflow-labs/mathflow/internal/cli/config"
	"github.com/mathflow-labs/mathflow/internal/cli/output"
	"github.com/mathflow-labs/mathflow/internal/solver"
)

// App carries the shared dependencies every subcommand needs. The root
// command fills it in during PersistentPreRunE, after configuration is
// loaded and before any RunE executes.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Solver   *solver.Solver
	Renderer *output.Renderer
}
