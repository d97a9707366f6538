package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// maxUpwardSearchLevels limits how far up the directory tree to search
// for config files.
const maxUpwardSearchLevels = 10

const (
	DefaultOutput         = "auto"
	DefaultPort           = 8080
	DefaultTimeoutSeconds = 10
)

// flagKeys maps CLI flag names onto config keys for the posflag provider.
var flagKeys = map[string]string{
	"output":  "output",
	"verbose": "verbose",
	"task":    "task",
	"explain": "explain",
	"symbol":  "symbols",
	"port":    "server.port",
	"timeout": "server.timeout_seconds",
}

// findConfigFile picks the config file to use.
// Priority: explicit path > mathflow.yaml > mathflow.yml, searching upward
// from the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range []string{"mathflow.yaml", "mathflow.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Load builds the configuration with the usual precedence, highest to
// lowest: flags > MATHFLOW_ env vars > config file > defaults. Nested env
// keys use double underscores (MATHFLOW_SERVER__PORT -> server.port).
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"output":                 DefaultOutput,
		"verbose":                false,
		"task":                   "auto",
		"explain":                false,
		"server.port":            DefaultPort,
		"server.timeout_seconds": DefaultTimeoutSeconds,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	fileUsed := findConfigFile(cfgFile)
	if fileUsed != "" {
		if err := k.Load(file.Provider(fileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", fileUsed, err)
		}
	}

	if err := k.Load(env.Provider("MATHFLOW_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "MATHFLOW_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only flags that were explicitly set override lower layers.
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.FileUsed = fileUsed
	return cfg, nil
}
