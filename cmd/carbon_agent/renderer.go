package main

import (
	"context"
	"fmt"

	"github.com/terrago/carbon-advisor/internal/config"
	"github.com/terrago/carbon-advisor/internal/llm"
	"github.com/terrago/carbon-advisor/internal/rewriting"
)

// newRenderer builds the LLM renderer for provider, falling back to the configured
// provider when empty. The returned close func releases the client.
// A missing API key fails here, before any work is done.
func newRenderer(ctx context.Context, provider, model string) (rewriting.Renderer, func(), error) {
	cfg := config.Defaults()
	if appConfig != nil {
		cfg = *appConfig
	}
	if provider == "" {
		provider = cfg.Provider
	}
	if model != "" {
		cfg.Model = model
	}

	apiKey := cfg.APIKeyFor(provider)
	if apiKey == "" {
		return nil, nil, fmt.Errorf("API key is required for rewriting (set %s or api_key in the config file)", apiKeyEnv(provider))
	}

	llmCfg, err := cfg.LLMConfig(provider)
	if err != nil {
		return nil, nil, err
	}
	client, err := llm.NewClient(ctx, llmCfg, apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close LLM client")
		}
	}
	return rewriting.NewLLMRenderer(client), closeFn, nil
}

func apiKeyEnv(provider string) string {
	if llm.Provider(provider) == llm.ProviderGemini {
		return config.EnvGeminiKey
	}
	return config.EnvOpenAIKey
}
