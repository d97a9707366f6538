// Package config provides configuration management for the mathflow CLI.
package config

import "time"

// ServerConfig holds the API server settings.
type ServerConfig struct {
	Port           int `koanf:"port"`
	TimeoutSeconds int `koanf:"timeout_seconds"`
}

// Timeout returns the per-request deadline as a duration.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Config holds all CLI configuration options.
type Config struct {
	// OutputFormat selects the renderer: auto|text|table|markdown|json|yaml.
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
	// Task is the default task when a query does not name one.
	Task string `koanf:"task"`
	// Explain turns on step-by-step output by default.
	Explain bool `koanf:"explain"`
	// Symbols extends the variable allow-list at startup. The namespace is
	// still fixed for the process lifetime; this is a boot-time setting,
	// not a per-request one.
	Symbols []string     `koanf:"symbols"`
	Server  ServerConfig `koanf:"server"`

	// FileUsed records which config file was loaded, for --verbose output.
	FileUsed string `koanf:"-"`
}
