package learning

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"

	"learngame/pkg/inference"
	"learngame/pkg/schema"
	"learngame/pkg/utils"
)

// DistractorSource produces wrong answer options for a choice question.
type DistractorSource interface {
	Generate(ctx context.Context, correct, subject, context string) []string
}

var (
	// genericDistractors answer when no model or no context is available.
	genericDistractors = []string{"Another character", "Minor hero", "Unknown figure", "Fictional character"}
	// failedDistractors answer when the model call or its parsing fails.
	failedDistractors = []string{"Another character", "Secondary role", "Unknown role"}
	// placeholderDistractors pad short lists.
	placeholderDistractors = []string{"Alternative role", "Other role", "No role"}
)

// nearDuplicateOverlap is the word overlap at which a model distractor is
// treated as a rewording of the correct answer.
const nearDuplicateOverlap = 0.8

type DistractorGenerator struct {
	inf inference.Inferencer
}

// NewDistractorGenerator returns a generator backed by inf. A nil inf always
// answers with the generic pool.
func NewDistractorGenerator(inf inference.Inferencer) *DistractorGenerator {
	return &DistractorGenerator{inf: inf}
}

// Generate returns exactly DistractorCount options, none equal to correct
// ignoring case. It never fails.
func (g *DistractorGenerator) Generate(ctx context.Context, correct, subject, context string) []string {
	if g == nil || g.inf == nil || strings.TrimSpace(context) == "" {
		return finalizeDistractors(correct, genericDistractors)
	}

	user := fmt.Sprintf(distractorPrompt, utils.Truncate(context, DistractorContextRunes), subject, correct)
	params := &openai.ChatCompletionNewParams{
		Temperature:         openai.Float(0.7),
		MaxCompletionTokens: openai.Int(500),
		ResponseFormat:      schema.DistractorResponseFormat(),
	}

	out, err := g.inf.Infer(ctx, params, "", user)
	if err != nil {
		log.Warn("distractor inference failed", "subject", subject, "error", err)
		return finalizeDistractors(correct, failedDistractors)
	}

	parsed, err := utils.DecodeJSON[schema.DistractorSet](out)
	if err != nil {
		log.Warn("failed to parse distractors", "subject", subject, "error", err)
		log.Debug("raw output", "output", out)
		return finalizeDistractors(correct, failedDistractors)
	}

	candidates := make([]string, 0, len(parsed.Distractors))
	for _, d := range parsed.Distractors {
		if strings.TrimSpace(correct) != "" && utils.WordOverlap(d, correct) >= nearDuplicateOverlap {
			log.Debug("dropping near-duplicate distractor", "subject", subject, "distractor", d)
			continue
		}
		candidates = append(candidates, d)
	}
	return finalizeDistractors(correct, candidates)
}

// finalizeDistractors trims and dedupes candidates, removes the correct
// value, pads with placeholders and cuts the list to DistractorCount.
func finalizeDistractors(correct string, candidates []string) []string {
	correct = strings.TrimSpace(correct)
	out := make([]string, 0, DistractorCount)
	seen := make(map[string]struct{}, DistractorCount+1)
	seen[strings.ToLower(correct)] = struct{}{}

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || len(out) == DistractorCount {
			return
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}

	for _, c := range candidates {
		add(c)
	}
	for _, p := range placeholderDistractors {
		add(p)
	}
	for i := 2; len(out) < DistractorCount; i++ {
		add(placeholderDistractors[0] + " " + strconv.Itoa(i))
	}
	return out
}
