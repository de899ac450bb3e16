// Package config provides configuration loading and validation for the CLI
// and the server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/jonathan/copydesk/internal/llm"
	"github.com/jonathan/copydesk/internal/voice"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Samples []string `json:"samples,omitempty"` // Paths to text files holding writing samples
	URLs    []string `json:"urls,omitempty"`    // Pages to extract writing samples from

	// Model
	Provider string `json:"provider,omitempty"` // gemini or openai
	Model    string `json:"model,omitempty"`    // Overrides the provider's advanced model
	APIKey   string `json:"api_key,omitempty"`  // Provider API key

	// Storage and endpoints
	DataDir   string `json:"data_dir,omitempty"`   // Where wizard drafts and the saved profile live
	ServerURL string `json:"server_url,omitempty"` // Analysis server for the wizards
	Output    string `json:"output,omitempty"`     // Write the analysis JSON here instead of stdout

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check that enough samples are given since those can
// still come from CLI flags after merging.
func (c *Config) Validate() error {
	if c.Provider != "" {
		if _, err := llm.ConfigForProvider(c.Provider); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if n := len(c.Samples) + len(c.URLs); n > voice.MaxSamples {
		return fmt.Errorf("config error: %d samples given, at most %d are analyzed", n, voice.MaxSamples)
	}

	for _, path := range c.Samples {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: sample file not found: %s", path)
		}
	}

	for _, raw := range append(append([]string(nil), c.URLs...), c.ServerURL) {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: not an http(s) URL: %s", raw)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.ServerURL == "" {
		result.ServerURL = defaults.ServerURL
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}

	// Lists: an explicit list replaces the default one
	if len(result.Samples) == 0 {
		result.Samples = defaults.Samples
	}
	if len(result.URLs) == 0 {
		result.URLs = defaults.URLs
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
