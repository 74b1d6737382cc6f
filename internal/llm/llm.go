package llm

import (
	"context"
	"fmt"

	"github.com/m2tx/answer_agent/internal/agent"
	"github.com/m2tx/answer_agent/internal/config"
	"github.com/m2tx/answer_agent/internal/llm/gemini"
	"github.com/m2tx/answer_agent/internal/llm/openai"
)

// New returns the model selected by cfg.Provider.
func New(ctx context.Context, cfg *config.Config) (agent.Model, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		client, err := gemini.New(ctx, cfg.GoogleAPIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderOpenAI:
		return openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
