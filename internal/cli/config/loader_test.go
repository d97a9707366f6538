package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.StringP("output", "o", "", "")
	f.BoolP("verbose", "v", false, "")
	f.String("task", "", "")
	f.Bool("explain", false, "")
	f.StringSlice("symbol", nil, "")
	f.Int("port", 0, "")
	f.Int("timeout", 0, "")
	return f
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("", newFlags())
	require.NoError(t, err)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, "auto", cfg.Task)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.Server.TimeoutSeconds)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.FileUsed)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mathflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: json\nserver:\n  port: 9999\nsymbols:\n  - omega\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load("", newFlags())
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, []string{"omega"}, cfg.Symbols)
	assert.Equal(t, path, cfg.FileUsed)
}

func TestLoadFindsConfigUpward(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mathflow.yml"), []byte("task: solve\n"), 0o644))
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := Load("", newFlags())
	require.NoError(t, err)
	assert.Equal(t, "solve", cfg.Task)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mathflow.yaml"), []byte("output: json\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("MATHFLOW_OUTPUT", "yaml")
	t.Setenv("MATHFLOW_SERVER__PORT", "7070")

	cfg, err := Load("", newFlags())
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MATHFLOW_OUTPUT", "yaml")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--output", "table", "--port", "6060"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.OutputFormat)
	assert.Equal(t, 6060, cfg.Server.Port)
}

func TestUnsetFlagsDoNotOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MATHFLOW_OUTPUT", "markdown")

	cfg, err := Load("", newFlags())
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)
}
