package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathflow-labs/mathflow/internal/cli/config"
	"github.com/mathflow-labs/mathflow/internal/cli/output"
	"github.com/mathflow-labs/mathflow/internal/solver"
)

// newTestApp wires an App the way the root command does, rendering into
// the given buffer.
func newTestApp(buf *bytes.Buffer, mode output.Mode) *App {
	return &App{
		Config:   &config.Config{},
		Solver:   solver.New(nil, nil, nil),
		Renderer: output.NewRenderer(buf, buf, mode),
	}
}

func TestSolveCommand(t *testing.T) {
	buf := new(bytes.Buffer)
	app := newTestApp(buf, output.ModeText)

	cmd := NewSolveCommand(app)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"x^2 - 5x + 6 = 0"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "x = 2, x = 3\n", buf.String())
}

func TestSolveCommandTaskFlag(t *testing.T) {
	buf := new(bytes.Buffer)
	app := newTestApp(buf, output.ModeText)

	cmd := NewSolveCommand(app)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--task", "differentiate", "--var", "x", "sin(x)"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "cos(x)\n", buf.String())
}

func TestSolveCommandConfigDefaultTask(t *testing.T) {
	buf := new(bytes.Buffer)
	app := newTestApp(buf, output.ModeText)
	app.Config.Task = "expand"

	cmd := NewSolveCommand(app)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"(x + 1)^2"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "x**2 + 2*x + 1\n", buf.String())
}

func TestSolveCommandRejectsUnsafeInput(t *testing.T) {
	buf := new(bytes.Buffer)
	app := newTestApp(buf, output.ModeText)

	cmd := NewSolveCommand(app)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"__import__('os')"})

	assert.Error(t, cmd.Execute())
}

func TestSolveCommandMetadata(t *testing.T) {
	cmd := NewSolveCommand(&App{})

	assert.Equal(t, "solve <query>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	for _, flag := range []string{"task", "var", "explain", "extract"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestVersionCommand(t *testing.T) {
	buf := new(bytes.Buffer)
	cmd := NewVersionCommand("1.2.3")
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "mathflow v1.2.3")
}

func TestReplCommandMetadata(t *testing.T) {
	cmd := NewReplCommand(&App{})

	assert.Equal(t, "repl", cmd.Use)
	assert.NotEmpty(t, cmd.Long, "Long should document the dot-commands")
}

func TestServeCommandMetadata(t *testing.T) {
	cmd := NewServeCommand(&App{})

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}
