package llm

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/startup-pack-agent/internal/apierr"
	"github.com/BerylCAtieno/startup-pack-agent/internal/config"
)

// New builds the client selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		if cfg.GeminiAPIKey == "" {
			return nil, apierr.Configuration("GEMINI_API_KEY", nil)
		}
		c, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderGenAI:
		if !cfg.UseVertexAI && cfg.GoogleAPIKey == "" {
			return nil, apierr.Configuration("GOOGLE_API_KEY", nil)
		}
		if cfg.UseVertexAI && cfg.GoogleProject == "" {
			return nil, apierr.Configuration("GOOGLE_CLOUD_PROJECT", nil)
		}
		c, err := NewGenAIClient(ctx, GenAIConfig{
			APIKey:      cfg.GoogleAPIKey,
			Model:       cfg.Model,
			UseVertexAI: cfg.UseVertexAI,
			Project:     cfg.GoogleProject,
			Location:    cfg.GoogleLocation,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, apierr.Configuration("OPENAI_API_KEY", nil)
		}
		model := cfg.Model
		if model == "" {
			model = cfg.OpenAIModel
		}
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, model, nil), nil
	default:
		return nil, apierr.Configuration("LLM_PROVIDER", fmt.Errorf("unknown provider %q", cfg.Provider))
	}
}
