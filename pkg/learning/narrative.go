package learning

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"

	"learngame/pkg/inference"
	"learngame/pkg/schema"
	"learngame/pkg/utils"
)

var ErrNoEntities = errors.New("no characters or events to build a narrative from")

// BuildNarrative asks the model for a story, a dialogue and comprehension
// questions built from the store's entity names.
func BuildNarrative(ctx context.Context, inf inference.Inferencer, store schema.EntityStore) (schema.SpecializedContent, error) {
	if inf == nil {
		return schema.SpecializedContent{}, ErrNoInferencer
	}

	characters := entityNames(utils.Head(store.Characters, NarrativeCharacters), func(c schema.Character) string { return c.Name })
	events := entityNames(utils.Head(store.Events, NarrativeEvents), func(e schema.Event) string { return e.Name })
	locations := entityNames(utils.Head(store.Locations, NarrativeLocations), func(l schema.Location) string { return l.Name })
	if len(characters) == 0 && len(events) == 0 {
		return schema.SpecializedContent{}, ErrNoEntities
	}

	user := fmt.Sprintf("Characters: %s\nEvents: %s\nLocations: %s",
		strings.Join(characters, ", "), strings.Join(events, ", "), strings.Join(locations, ", "))
	params := &openai.ChatCompletionNewParams{
		Temperature:         openai.Float(0.7),
		MaxCompletionTokens: openai.Int(2000),
		ResponseFormat:      schema.NarrativeResponseFormat(),
	}

	out, err := inf.Infer(ctx, params, narrativeSystemPrompt, user)
	if err != nil {
		return schema.SpecializedContent{}, fmt.Errorf("narrative inference: %w", err)
	}

	parsed, err := utils.DecodeJSON[schema.Narrative](out)
	if err != nil {
		log.Debug("raw output", "output", out)
		return schema.SpecializedContent{}, err
	}
	if strings.TrimSpace(parsed.Story) == "" {
		return schema.SpecializedContent{}, errors.New("narrative response has no story")
	}

	content := schema.SpecializedContent{
		Type:  schema.Narrative,
		Story: strings.TrimSpace(parsed.Story),
	}
	if len(parsed.Dialog.Lines) > 0 {
		dialog := parsed.Dialog
		content.Dialog = &dialog
	}
	for _, q := range parsed.InteractiveQuestions {
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			log.Debug("dropping narrative question with invalid answer", "question", q.Question, "correct", q.Correct)
			continue
		}
		content.InteractiveQuestions = append(content.InteractiveQuestions, q)
	}

	return content, nil
}

func entityNames[T any](items []T, name func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if n := strings.TrimSpace(name(it)); n != "" {
			out = append(out, n)
		}
	}
	return out
}
