package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/mathflow-labs/mathflow/internal/solver"
)

// NewReplCommand creates the interactive session command.
func NewReplCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive math session",
		Long: `Repl reads one query per line, runs it through the pipeline, and prints
the result. Dot-commands control the session:

  .task <name>   set the task for following queries (default auto)
  .vars a,b      declare variables for following queries
  .explain       toggle step-by-step explanations
  .help          show this help
  .quit          leave the session`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd, app)
		},
	}
	return cmd
}

type replState struct {
	task    solver.Task
	vars    []string
	explain bool
}

func runRepl(cmd *cobra.Command, app *App) error {
	historyFile := filepath.Join(os.TempDir(), "mathflow_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mathflow> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "mathflow REPL")
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	state := &replState{task: solver.TaskAuto, explain: app.Config.Explain}

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cmd, state, line); quit {
				return nil
			}
			continue
		}

		result, err := app.Solver.Solve(cmd.Context(), solver.Query{
			Text:    line,
			Task:    state.task,
			Vars:    state.vars,
			Extract: true,
			Explain: state.explain,
		})
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		if err := app.Renderer.Outcome(result); err != nil {
			return err
		}
	}
}

func handleDotCommand(cmd *cobra.Command, state *replState, line string) bool {
	out := cmd.OutOrStdout()
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".task":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(out, "task: %s\n", state.task)
			return false
		}
		task, err := solver.ParseTask(parts[1])
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return false
		}
		state.task = task

	case ".vars":
		if len(parts) < 2 {
			state.vars = nil
			_, _ = fmt.Fprintln(out, "variables cleared")
			return false
		}
		state.vars = nil
		for _, v := range strings.Split(parts[1], ",") {
			if v = strings.TrimSpace(v); v != "" {
				state.vars = append(state.vars, v)
			}
		}

	case ".explain":
		state.explain = !state.explain
		_, _ = fmt.Fprintf(out, "explain: %v\n", state.explain)

	case ".help":
		_, _ = fmt.Fprintln(out, "  .task <name>   set the task (auto|solve|simplify|differentiate|integrate|factor|expand)")
		_, _ = fmt.Fprintln(out, "  .vars a,b      declare variables (no argument clears)")
		_, _ = fmt.Fprintln(out, "  .explain       toggle step-by-step explanations")
		_, _ = fmt.Fprintln(out, "  .quit          leave the session")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "unknown command %s, try .help\n", parts[0])
	}
	return false
}
