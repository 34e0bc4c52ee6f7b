// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Default configuration values.
const (
	DefaultBackendURL     = "http://localhost:8000"
	DefaultPort           = 8080
	DefaultRequestTimeout = 120
	DefaultOutputDir      = "generated"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	BackendURL         string `json:"backend_url,omitempty"`          // Base URL of the generation backend
	Port               int    `json:"port,omitempty"`                 // Listen port for serve mode
	RequestTimeoutSecs int    `json:"request_timeout_secs,omitempty"` // Generation request timeout
	OutputDir          string `json:"output_dir,omitempty"`           // Where fill mode writes artifacts
	Verbose            bool   `json:"verbose,omitempty"`              // Print detailed progress information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables. Unset
// variables leave their fields at zero values so the usual merge applies.
func FromEnv() Config {
	cfg := Config{
		BackendURL: os.Getenv("DOCGEN_BACKEND_URL"),
		OutputDir:  os.Getenv("DOCGEN_OUTPUT_DIR"),
	}
	if port := os.Getenv("DOCGEN_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}
	if timeout := os.Getenv("DOCGEN_REQUEST_TIMEOUT_SECS"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil {
			cfg.RequestTimeoutSecs = n
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RequestTimeoutSecs < 0 {
		return fmt.Errorf("config error: 'request_timeout_secs' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.BackendURL == "" {
		result.BackendURL = defaults.BackendURL
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RequestTimeoutSecs == 0 {
		result.RequestTimeoutSecs = defaults.RequestTimeoutSecs
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Defaults returns the built-in default configuration.
func Defaults() Config {
	return Config{
		BackendURL:         DefaultBackendURL,
		Port:               DefaultPort,
		RequestTimeoutSecs: DefaultRequestTimeout,
		OutputDir:          DefaultOutputDir,
	}
}
