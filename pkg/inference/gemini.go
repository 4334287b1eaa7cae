package inference

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

type GeminiInferencer struct {
	client *genai.Client
	apiKey string
	model  string
}

// NewGeminiInferencer creates a new inferencer instance using the Gemini API.
func NewGeminiInferencer(apiKey string, model string) (*GeminiInferencer, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiInferencer{
		client: client,
		apiKey: apiKey,
		model:  cmp.Or(model, defaultGeminiModel),
	}, nil
}

// Infer maps the chat completion params onto a Gemini generate call.
func (o *GeminiInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	}
	config, err := geminiConfig(params, system)
	if err != nil {
		return "", fmt.Errorf("gemini inference error: %w", err)
	}

	result, err := o.client.Models.GenerateContent(
		ctx,
		cmp.Or(params.Model, o.model),
		genai.Text(user),
		config,
	)
	if err != nil {
		return "", fmt.Errorf("gemini inference error: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", errors.New("empty completion content")
	}
	return text, nil
}

// geminiConfig builds the generate config. A JSON schema response format is
// passed on as the response JSON schema so output is constrained like on the
// OpenAI endpoints.
func geminiConfig(params *openai.ChatCompletionNewParams, system string) (*genai.GenerateContentConfig, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(cmp.Or(params.MaxCompletionTokens.Value, 4096)),
		Temperature:     genai.Ptr(float32(cmp.Or(params.Temperature.Value, 0.3))),
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	switch {
	case params.ResponseFormat.OfJSONSchema != nil:
		config.ResponseMIMEType = "application/json"
		s, err := geminiSchema(params.ResponseFormat.OfJSONSchema.JSONSchema.Schema)
		if err != nil {
			return nil, err
		}
		if s != nil {
			config.ResponseJsonSchema = s
		}
	case params.ResponseFormat.OfJSONObject != nil:
		config.ResponseMIMEType = "application/json"
	}
	return config, nil
}

// geminiSchema drops the meta keys Gemini does not accept in a response schema.
func geminiSchema(s any) (map[string]any, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding response schema: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decoding response schema: %w", err)
	}
	delete(m, "$schema")
	delete(m, "$id")
	return m, nil
}
