package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mathflow-labs/mathflow/internal/solver"
)

// NewSolveCommand creates the one-shot solve command.
func NewSolveCommand(app *App) *cobra.Command {
	var (
		taskFlag    string
		varsFlag    []string
		explainFlag bool
		extractFlag bool
	)

	cmd := &cobra.Command{
		Use:   "solve <query>",
		Short: "Run one math query through the pipeline",
		Long: `Solve normalizes a free-form math query, guards it against the fixed
namespace, routes it to the requested task, and prints the result.

Examples:
  mathflow solve "x^2 - 5x + 6 = 0"
  mathflow solve --task differentiate --var x "sin(x)*exp(x)"
  mathflow solve --task simplify "(x^2 - 1)/(x - 1)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := taskFlag
			if task == "" {
				task = app.Config.Task
			}
			out, err := app.Solver.Solve(cmd.Context(), solver.Query{
				Text:    strings.Join(args, " "),
				Task:    solver.Task(task),
				Vars:    varsFlag,
				Extract: extractFlag,
				Explain: explainFlag || app.Config.Explain,
			})
			if err != nil {
				return err
			}
			return app.Renderer.Outcome(out)
		},
	}

	cmd.Flags().StringVarP(&taskFlag, "task", "t", "", "task to run (auto|solve|simplify|differentiate|integrate|factor|expand)")
	cmd.Flags().StringSliceVar(&varsFlag, "var", nil, "declared variable(s), first one used by single-variable tasks")
	cmd.Flags().BoolVar(&explainFlag, "explain", false, "include step-by-step explanation")
	cmd.Flags().BoolVar(&extractFlag, "extract", false, "strip prompt words and noise before parsing")

	_ = cmd.RegisterFlagCompletionFunc("task", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(solver.Tasks()))
		for _, t := range solver.Tasks() {
			names = append(names, string(t))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
