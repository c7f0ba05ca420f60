// Package llm provides centralized LLM configuration and client abstractions.
// It lets the rewriting step switch between providers and model tiers.
package llm

import "fmt"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, short rewrites
	TierLite ModelTier = "lite"
	// TierStandard is for structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI chat completions provider
	ProviderOpenAI Provider = "openai"
)

// DefaultOpenAIModel is used for every tier unless OPENAI_MODEL or a flag overrides it.
const DefaultOpenAIModel = "gpt-4o-mini"

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Temperature is sent with every request. Zero keeps rewrites repeatable.
	Temperature float32
	// BaseURL overrides the provider endpoint (OpenAI only).
	BaseURL string
}

// DefaultConfig returns the default configuration (Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     DefaultOpenAIModel,
			TierStandard: DefaultOpenAIModel,
			TierAdvanced: "gpt-4o",
		},
		BaseURL: DefaultOpenAIBaseURL,
	}
}

// ConfigFor returns the default configuration of a provider.
func ConfigFor(provider Provider) (*Config, error) {
	switch provider {
	case ProviderGemini:
		return DefaultGeminiConfig(), nil
	case ProviderOpenAI:
		return DefaultOpenAIConfig(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q (want %s or %s)", provider, ProviderGemini, ProviderOpenAI)
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string),
		Temperature: c.Temperature,
		BaseURL:     c.BaseURL,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

// WithAllModels returns a new Config that uses one model for every tier.
func (c *Config) WithAllModels(model string) *Config {
	out := c.WithModel(TierLite, model)
	out.Models[TierStandard] = model
	out.Models[TierAdvanced] = model
	return out
}
