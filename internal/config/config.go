// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/terrago/carbon-advisor/internal/llm"
	"github.com/terrago/carbon-advisor/internal/logging"
)

// Environment variables read by ApplyEnv, ModelFor and APIKeyFor
const (
	EnvProvider    = "LLM_PROVIDER"
	EnvOpenAIKey   = "OPENAI_API_KEY"
	EnvOpenAIModel = "OPENAI_MODEL"
	EnvGeminiKey   = "GEMINI_API_KEY"
	EnvGeminiModel = "GEMINI_MODEL"
	EnvDatabaseURL = "DATABASE_URL"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
	EnvPort        = "PORT"
	EnvConcurrency = "BATCH_CONCURRENCY"
)

// Config represents the CLI and server configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Rewriting
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"` // gemini or openai
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`       // Overrides every model tier
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`   // Falls back to the provider's env var
	Rewrite  bool   `json:"rewrite,omitempty" yaml:"rewrite,omitempty"`   // Restyle action sentences with the provider

	// Storage and serving
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // console or json

	// Batch
	Concurrency int `json:"concurrency,omitempty" yaml:"concurrency,omitempty"` // Parallel assessments
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Provider:    string(llm.ProviderOpenAI),
		Port:        8080,
		LogLevel:    "info",
		LogFormat:   logging.FormatConsole,
		Concurrency: 4,
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

// Load reads the optional config file, applies environment overrides and defaults,
// and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for API keys since those are only required when rewriting.
func (c *Config) Validate() error {
	if c.Provider != "" {
		if _, err := llm.ConfigFor(llm.Provider(c.Provider)); err != nil {
			return fmt.Errorf("config error: 'provider' %w", err)
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
			return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
		}
	}
	if c.LogFormat != "" && c.LogFormat != logging.FormatConsole && c.LogFormat != logging.FormatJSON {
		return fmt.Errorf("config error: 'log_format' must be %q or %q", logging.FormatConsole, logging.FormatJSON)
	}

	return nil
}

// ApplyEnv overrides fields with any of the supported environment variables that are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvProvider); v != "" {
		c.Provider = strings.ToLower(v)
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer, got %q", EnvPort, v)
		}
		c.Port = port
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer, got %q", EnvConcurrency, v)
		}
		c.Concurrency = n
	}
	return nil
}

// ModelFor returns the configured model override for the provider, or "".
// An explicit Model wins over the provider's environment variable.
func (c *Config) ModelFor(provider string) string {
	if c.Model != "" {
		return c.Model
	}
	switch llm.Provider(provider) {
	case llm.ProviderOpenAI:
		return os.Getenv(EnvOpenAIModel)
	case llm.ProviderGemini:
		return os.Getenv(EnvGeminiModel)
	default:
		return ""
	}
}

// APIKeyFor returns the API key for the provider: the configured key, else the provider's env var.
func (c *Config) APIKeyFor(provider string) string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch llm.Provider(provider) {
	case llm.ProviderOpenAI:
		return os.Getenv(EnvOpenAIKey)
	case llm.ProviderGemini:
		return os.Getenv(EnvGeminiKey)
	default:
		return ""
	}
}

// LLMConfig builds the client configuration for the provider, applying ModelFor.
func (c *Config) LLMConfig(provider string) (*llm.Config, error) {
	llmCfg, err := llm.ConfigFor(llm.Provider(provider))
	if err != nil {
		return nil, err
	}
	if model := c.ModelFor(provider); model != "" {
		llmCfg = llmCfg.WithAllModels(model)
	}
	return llmCfg, nil
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
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
