// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default values applied when neither the config file nor flags set a field.
const (
	DefaultPort              = 8080
	DefaultTemplate          = "classic"
	DefaultGenerationTimeout = 120 * time.Second
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment variables.
type Config struct {
	// Connections
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Behavior
	UseBrowser        bool   `json:"use_browser,omitempty"`        // Use headless browser for SPA job boards
	Verbose           bool   `json:"verbose,omitempty"`            // Print detailed progress information
	DefaultTemplate   string `json:"default_template,omitempty"`   // Template used when a request names none
	GenerationTimeout string `json:"generation_timeout,omitempty"` // Per-model-call timeout, e.g. "120s"; "0" disables
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

// FromEnv builds a Config from environment variables. Fields absent from the
// environment stay zero and fall through to defaults during merging.
func FromEnv() Config {
	return Config{
		APIKey:            os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		GenerationTimeout: os.Getenv("GENERATION_TIMEOUT"),
	}
}

// Validate checks that the configuration has valid values.
// Note: required fields are checked after merging, by the commands that
// need them.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.GenerationTimeout != "" {
		d, err := time.ParseDuration(c.GenerationTimeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'generation_timeout': %w", err)
		}
		if d < 0 {
			return fmt.Errorf("config error: 'generation_timeout' must be non-negative")
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags and environment variables.
func (c Config) MergeWithDefaults(defaults Config) Config {
	result := c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.DefaultTemplate == "" {
		result.DefaultTemplate = defaults.DefaultTemplate
	}
	if result.GenerationTimeout == "" {
		result.GenerationTimeout = defaults.GenerationTimeout
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Timeout resolves the generation timeout. An unset value yields the
// default; an explicit "0" disables the bound entirely.
func (c Config) Timeout() time.Duration {
	if c.GenerationTimeout == "" {
		return DefaultGenerationTimeout
	}
	d, err := time.ParseDuration(c.GenerationTimeout)
	if err != nil {
		return DefaultGenerationTimeout
	}
	return d
}
