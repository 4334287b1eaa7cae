package learning

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"

	"learngame/pkg/inference"
	"learngame/pkg/schema"
	"learngame/pkg/utils"
)

// ExtractEntities asks the model for the Entity Store of text.
func ExtractEntities(ctx context.Context, inf inference.Inferencer, text string) (schema.EntityStore, error) {
	if inf == nil {
		return schema.EntityStore{}, ErrNoInferencer
	}

	text = utils.Truncate(text, ExtractionTextRunes)
	if log.GetLevel() <= log.DebugLevel {
		if tokens, err := utils.NumTokensFromMessages(extractSystemPrompt + text); err == nil {
			log.Debug("extracting entities", "chars", len(text), "tokens", tokens)
		} else {
			log.Debug("extracting entities", "chars", len(text))
		}
	}

	params := &openai.ChatCompletionNewParams{
		Temperature:         openai.Float(0.3),
		MaxCompletionTokens: openai.Int(3000),
		ResponseFormat:      schema.EntityStoreResponseFormat(),
	}
	out, err := inf.Infer(ctx, params, extractSystemPrompt, "Text to analyse:\n"+text)
	if err != nil {
		return schema.EntityStore{}, fmt.Errorf("entity extraction: %w", err)
	}

	store, err := utils.DecodeJSON[schema.EntityStore](out)
	if err != nil {
		log.Debug("raw output", "output", out)
		return schema.EntityStore{}, fmt.Errorf("entity extraction: %w", err)
	}

	log.Info("entities extracted",
		"characters", len(store.Characters),
		"events", len(store.Events),
		"locations", len(store.Locations),
		"objects", len(store.Objects))
	return store, nil
}
