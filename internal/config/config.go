// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-relevance/internal/types"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment variables.
type Config struct {
	// Inputs
	ResumeFile string `json:"resume_file,omitempty"` // Path to a resume text file
	JobFile    string `json:"job_file,omitempty"`    // Path to a job posting text file
	JobURL     string `json:"job_url,omitempty"`     // URL to fetch a job posting from

	// Service
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	LogLevel    string `json:"log_level,omitempty"`    // debug, info, warn, error

	// LLM and embeddings
	APIKey         string `json:"api_key,omitempty"`         // Gemini API key
	EmbeddingModel string `json:"embedding_model,omitempty"` // Embedding model name

	// Scoring
	Weights *types.WeightConfig `json:"weights,omitempty"` // Scoring weights; nil uses the standard table
	Workers int                 `json:"workers,omitempty"` // Batch evaluation worker count

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA job sites
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Port:           8080,
		LogLevel:       "info",
		EmbeddingModel: "text-embedding-004",
		Workers:        4,
	}
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
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.JobFile != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job_file' and 'job_url' are mutually exclusive")
	}

	// Validate numeric ranges
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.ResumeFile != "" {
		if _, err := os.Stat(c.ResumeFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.ResumeFile)
		}
	}
	if c.JobFile != "" {
		if _, err := os.Stat(c.JobFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.JobFile)
		}
	}

	// Validate weights early so bad tables fail before any scoring starts
	if c.Weights != nil {
		if err := c.Weights.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.ResumeFile == "" {
		result.ResumeFile = defaults.ResumeFile
	}
	if result.JobFile == "" {
		result.JobFile = defaults.JobFile
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	// Weights: nil means the caller wants the standard table
	if result.Weights == nil {
		result.Weights = defaults.Weights
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// EffectiveWeights returns the configured weight table, or the standard
// one when none is set.
func (c *Config) EffectiveWeights() types.WeightConfig {
	if c.Weights != nil {
		return *c.Weights
	}
	return types.DefaultWeightConfig()
}
