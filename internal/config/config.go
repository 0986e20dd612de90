// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the autofill configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty"` // Path to the profile document

	// Fill behavior
	PaceMS    int  `json:"pace_ms,omitempty" yaml:"pace_ms,omitempty"`     // Delay before each write in milliseconds
	Highlight bool `json:"highlight,omitempty" yaml:"highlight,omitempty"` // Highlight filled fields
	Debug     bool `json:"debug,omitempty" yaml:"debug,omitempty"`         // Keep signals and highlight every scanned field
	Verbose   bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`     // Print detailed debug information

	// Browser
	Headful               bool `json:"headful,omitempty" yaml:"headful,omitempty"`                                 // Show the Chrome window
	BrowserTimeoutSeconds int  `json:"browser_timeout_seconds,omitempty" yaml:"browser_timeout_seconds,omitempty"` // Per-page browser timeout

	// Server
	Port               string `json:"port,omitempty" yaml:"port,omitempty"`                                   // HTTP listen port
	RateLimitPerMinute int    `json:"rate_limit_per_minute,omitempty" yaml:"rate_limit_per_minute,omitempty"` // Requests per minute per client
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		PaceMS:                150,
		BrowserTimeoutSeconds: 60,
		Port:                  "8080",
		RateLimitPerMinute:    60,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.PaceMS < 0 {
		return fmt.Errorf("config error: 'pace_ms' must be non-negative")
	}
	if c.BrowserTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'browser_timeout_seconds' must be non-negative")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("config error: 'rate_limit_per_minute' must be non-negative")
	}

	if c.Profile != "" {
		if _, err := os.Stat(c.Profile); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile file not found: %s", c.Profile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Port == "" {
		result.Port = defaults.Port
	}

	if result.PaceMS == 0 {
		result.PaceMS = defaults.PaceMS
	}
	if result.BrowserTimeoutSeconds == 0 {
		result.BrowserTimeoutSeconds = defaults.BrowserTimeoutSeconds
	}
	if result.RateLimitPerMinute == 0 {
		result.RateLimitPerMinute = defaults.RateLimitPerMinute
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
