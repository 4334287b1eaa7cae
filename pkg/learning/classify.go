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

var ErrNoInferencer = errors.New("no inferencer configured")

var splitRecommendations = map[string]bool{
	"single_topic": true,
	"can_split":    true,
	"should_split": true,
}

// FallbackAnalysis is returned whenever classification cannot be obtained.
func FallbackAnalysis() schema.ContentAnalysis {
	return schema.ContentAnalysis{
		PrimaryType:          schema.Narrative,
		SecondaryTypes:       []schema.ContentType{},
		SplitRecommendation:  "single_topic",
		Confidence:           0.5,
		Reason:               "fallback",
		ClassificationFailed: true,
	}
}

// Classify asks the model for the dominant content type of store and falls
// back to FallbackAnalysis on any failure.
func Classify(ctx context.Context, inf inference.Inferencer, store schema.EntityStore) schema.ContentAnalysis {
	analysis, err := classify(ctx, inf, store)
	if err != nil {
		log.Warn("content classification failed, using fallback", "error", err)
		return FallbackAnalysis()
	}
	return analysis
}

func classify(ctx context.Context, inf inference.Inferencer, store schema.EntityStore) (schema.ContentAnalysis, error) {
	if inf == nil {
		return schema.ContentAnalysis{}, ErrNoInferencer
	}

	params := &openai.ChatCompletionNewParams{
		Temperature:         openai.Float(0.2),
		MaxCompletionTokens: openai.Int(500),
		ResponseFormat:      schema.ClassificationResponseFormat(),
	}
	out, err := inf.Infer(ctx, params, classifySystemPrompt, classifierSamples(store))
	if err != nil {
		return schema.ContentAnalysis{}, err
	}

	parsed, err := utils.DecodeJSON[schema.Classification](out)
	if err != nil {
		log.Debug("raw output", "output", out)
		return schema.ContentAnalysis{}, err
	}

	primary, ok := schema.ParseContentType(parsed.PrimaryType)
	if !ok {
		return schema.ContentAnalysis{}, fmt.Errorf("unknown primary type %q", parsed.PrimaryType)
	}

	analysis := schema.ContentAnalysis{
		PrimaryType:         primary,
		SecondaryTypes:      []schema.ContentType{},
		SplitRecommendation: "single_topic",
		Confidence:          min(max(parsed.Confidence, 0), 1),
		Reason:              strings.TrimSpace(parsed.Reason),
	}
	for _, s := range parsed.SecondaryTypes {
		if t, ok := schema.ParseContentType(s); ok {
			analysis.SecondaryTypes = append(analysis.SecondaryTypes, t)
		}
	}
	if split := strings.ToLower(strings.TrimSpace(parsed.SplitRecommendation)); splitRecommendations[split] {
		analysis.SplitRecommendation = split
	}

	log.Debug("content classified", "type", analysis.PrimaryType, "confidence", analysis.Confidence)
	return analysis, nil
}

// classifierSamples lists the first few entities of every category.
func classifierSamples(store schema.EntityStore) string {
	var b strings.Builder
	sample := func(title string, lines []string) {
		b.WriteString(title + ":\n")
		if len(lines) == 0 {
			b.WriteString("- (none)\n")
		}
		for _, line := range lines {
			b.WriteString("- " + utils.LimitStr(line, ClassifierSampleRunes) + "\n")
		}
		b.WriteString("\n")
	}

	var lines []string
	for _, c := range utils.Head(store.Characters, ClassifierSamples) {
		lines = append(lines, joinNonEmpty(" - ", c.Name, c.Role, c.Description))
	}
	sample("CHARACTERS", lines)

	lines = nil
	for _, e := range utils.Head(store.Events, ClassifierSamples) {
		lines = append(lines, joinNonEmpty(" - ", e.Name, e.Description))
	}
	sample("EVENTS", lines)

	lines = nil
	for _, l := range utils.Head(store.Locations, ClassifierSamples) {
		lines = append(lines, joinNonEmpty(" - ", l.Name, l.Description))
	}
	sample("LOCATIONS", lines)

	lines = nil
	for _, o := range utils.Head(store.Objects, ClassifierSamples) {
		lines = append(lines, joinNonEmpty(" - ", o.Name, o.Purpose))
	}
	sample("OBJECTS", lines)

	fmt.Fprintf(&b, "Totals: %d characters, %d events, %d locations, %d objects.",
		len(store.Characters), len(store.Events), len(store.Locations), len(store.Objects))
	return b.String()
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
