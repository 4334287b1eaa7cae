package inference

import (
	"cmp"
	"fmt"
)

type preset struct {
	baseURL string
	model   string
}

// presets are OpenAI-compatible chat completion endpoints.
var presets = map[string]preset{
	"groq":     {baseURL: "https://api.groq.com/openai/v1", model: "llama-3.3-70b-versatile"},
	"grok":     {baseURL: "https://api.x.ai/v1", model: "grok-4-fast-reasoning"},
	"moonshot": {baseURL: "https://api.moonshot.ai/v1", model: "kimi-k2-5"},
	"kimi":     {baseURL: "https://api.kimi.com/coding/v1", model: "kimi-for-coding"},
}

// NewCompatibleInferencer creates an inferencer for a named OpenAI-compatible provider.
func NewCompatibleInferencer(provider, apiKey, model string) (*OpenAIInferencer, error) {
	p, ok := presets[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
	inf := NewOpenAIInferencer(apiKey, cmp.Or(model, p.model))
	inf.name = provider
	inf.ChangeBaseURL(p.baseURL)
	return inf, nil
}
