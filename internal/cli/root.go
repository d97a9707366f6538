// Package cli provides the command-line interface for mathflow.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mathflow-labs/mathflow/internal/cli/commands"
	"github.com/mathflow-labs/mathflow/internal/cli/config"
	"github.com/mathflow-labs/mathflow/internal/cli/output"
	"github.com/mathflow-labs/mathflow/internal/solver"
	"github.com/mathflow-labs/mathflow/pkg/parser"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	app := &commands.App{}

	rootCmd := &cobra.Command{
		Use:   "mathflow",
		Short: "mathflow - Math query sanitization and solving",
		Long: `mathflow turns free-form math questions into exact symbolic answers.

Queries pass through a normalization and sanitization pipeline before any
evaluation: Unicode operators are canonicalized, implicit multiplication is
made explicit, and every token is checked against a fixed allow-list of
symbols and functions. Safe queries are routed to the symbolic engine to
solve, simplify, differentiate, integrate, factor, or expand.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			app.Config = cfg

			logger := slog.New(slog.DiscardHandler)
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
				if cfg.FileUsed != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", cfg.FileUsed)
				}
			}
			app.Logger = logger

			allowed := parser.NewAllowlist()
			allowed.AddSymbols(cfg.Symbols...)

			app.Solver = solver.New(solver.NewKernelEngine(logger), allowed, logger)
			app.Renderer = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Math query sanitization and solving pipeline
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./mathflow.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|table|markdown|json|yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("task", "", "Default task when a query does not name one")
	rootCmd.PersistentFlags().Bool("explain", false, "Include step-by-step explanations")
	rootCmd.PersistentFlags().StringSlice("symbol", nil, "Extra variable names to allow (repeatable)")
	rootCmd.PersistentFlags().Int("port", 0, "Port for the API server")
	rootCmd.PersistentFlags().Int("timeout", 0, "Per-request timeout in seconds")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Modes(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("task", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(solver.Tasks()))
		for _, t := range solver.Tasks() {
			names = append(names, string(t))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewSolveCommand(app))
	rootCmd.AddCommand(commands.NewReplCommand(app))
	rootCmd.AddCommand(commands.NewServeCommand(app))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mathflow.

To load completions:

Bash:
  $ source <(mathflow completion bash)

Zsh:
  $ mathflow completion zsh > "${fpath[1]}/_mathflow"

Fish:
  $ mathflow completion fish | source

PowerShell:
  PS> mathflow completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch strings.ToLower(args[0]) {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
