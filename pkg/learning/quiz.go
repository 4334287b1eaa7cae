package learning

import (
	"cmp"
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"learngame/pkg/schema"
	"learngame/pkg/utils"
)

// QuizBuilder assembles the quiz. Distractors for different characters are
// fetched through at most Workers concurrent calls; options are shuffled
// afterwards in question order so a seeded Rand gives reproducible quizzes.
// A nil Distractors answers with the generic pool.
type QuizBuilder struct {
	Distractors DistractorSource
	Rand        *rand.Rand
	Workers     int
	// Context is the source text handed to the distractor source.
	Context string
}

func (b *QuizBuilder) Build(ctx context.Context, store schema.EntityStore) schema.Quiz {
	quiz := schema.Quiz{
		Title:       "Knowledge Check",
		Description: "A test based on the studied material",
		Questions:   []schema.Question{},
	}

	quiz.Questions = append(quiz.Questions, b.choiceQuestions(ctx, store.Characters)...)

	for i, event := range utils.Head(store.Events, MaxTrueFalseQuestions) {
		quiz.Questions = append(quiz.Questions, schema.Question{
			ID:     TrueFalseIDOffset + i,
			Type:   schema.TrueFalseQuestion,
			Text:   fmt.Sprintf("The event '%s' really took place in this material.", event.Name),
			Points: 1,
			Answer: true,
		})
	}

	if len(store.Characters) >= MinCharactersForMatching {
		q := schema.Question{
			ID:     len(quiz.Questions),
			Type:   schema.MatchingQuestion,
			Text:   "Match the characters with their descriptions:",
			Points: 2,
		}
		for _, c := range utils.Head(store.Characters, MatchingPairs) {
			q.Pairs = append(q.Pairs, schema.MatchingPair{
				Character:   c.Name,
				Description: utils.Truncate(c.Description, MatchingDescriptionRunes),
			})
		}
		quiz.Questions = append(quiz.Questions, q)
	}

	return quiz
}

func (b *QuizBuilder) choiceQuestions(ctx context.Context, characters []schema.Character) []schema.Question {
	if len(characters) < MinCharactersForChoice {
		return nil
	}
	characters = utils.Head(characters, MaxChoiceQuestions)

	source := b.Distractors
	if source == nil {
		source = NewDistractorGenerator(nil)
	}

	distractors := make([][]string, len(characters))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.Workers, 1))
	for i, char := range characters {
		g.Go(func() error {
			distractors[i] = source.Generate(gctx, correctRole(char), char.Name, b.Context)
			return nil
		})
	}
	_ = g.Wait()

	rng := b.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	questions := make([]schema.Question, 0, len(characters))
	for i, char := range characters {
		options, correct := shuffleOptions(rng, correctRole(char), distractors[i])
		questions = append(questions, schema.Question{
			ID:          i,
			Type:        schema.ChoiceQuestion,
			Text:        fmt.Sprintf("Who is %s?", char.Name),
			Points:      1,
			Options:     options,
			Correct:     correct,
			Explanation: char.Description,
		})
	}
	log.Debug("built choice questions", "count", len(questions))
	return questions
}

func correctRole(c schema.Character) string {
	return cmp.Or(c.Role, "Unknown")
}

// shuffleOptions permutes [correct]+distractors and returns the position the
// correct option moved to. The position is tracked through the permutation,
// not looked up by value, so identical option texts cannot confuse it.
func shuffleOptions(rng *rand.Rand, correct string, distractors []string) ([]string, int) {
	all := append([]string{correct}, distractors...)
	perm := rng.Perm(len(all))

	options := make([]string, len(all))
	var correctIndex int
	for dst, src := range perm {
		options[dst] = all[src]
		if src == 0 {
			correctIndex = dst
		}
	}
	return options, correctIndex
}
