package inference

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"

	"learngame/pkg/config"
)

// Inferencer runs a single chat completion. params carries the model,
// temperature, token limit and response format; nil means provider defaults.
type Inferencer interface {
	Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error)
}

// New builds the Inferencer selected by cfg. It returns nil without an error
// when no API key is configured, which callers treat as "no model available".
func New(cfg config.LLM) (Inferencer, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	switch cfg.Provider {
	case "", "openai":
		inf := NewOpenAIInferencer(cfg.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			inf.ChangeBaseURL(cfg.BaseURL)
		}
		return inf, nil
	case "gemini":
		inf, err := NewGeminiInferencer(cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("llm provider: %w", err)
		}
		return inf, nil
	default:
		inf, err := NewCompatibleInferencer(cfg.Provider, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("llm provider: %w", err)
		}
		return inf, nil
	}
}
