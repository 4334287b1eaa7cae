package learning

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learngame/pkg/schema"
)

// subjectDistractors returns distractors tagged with the subject so tests
// can check each question got its own set.
type subjectDistractors struct {
	inFlight, peak atomic.Int32
}

func (s *subjectDistractors) Generate(_ context.Context, correct, subject, _ string) []string {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	return []string{subject + " wrong 1", subject + " wrong 2", subject + " wrong 3"}
}

// echoDistractors collides with the correct answer on purpose.
type echoDistractors struct{}

func (echoDistractors) Generate(_ context.Context, correct, _, _ string) []string {
	return []string{correct, "other", "another"}
}

func characters(n int) []schema.Character {
	out := make([]schema.Character, n)
	for i := range out {
		out[i] = schema.Character{
			Name:        fmt.Sprintf("Character %d", i),
			Role:        fmt.Sprintf("role %d", i),
			Description: fmt.Sprintf("description %d", i),
		}
	}
	return out
}

func TestQuizBuilder_ChoiceQuestions(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 5, 8} {
		t.Run(fmt.Sprintf("%d characters", n), func(t *testing.T) {
			b := QuizBuilder{Distractors: NewDistractorGenerator(nil), Rand: seeded()}
			quiz := b.Build(context.Background(), schema.EntityStore{Characters: characters(n)})

			want := 0
			if n >= MinCharactersForChoice {
				want = min(n, MaxChoiceQuestions)
			}

			var choice int
			for _, q := range quiz.Questions {
				if q.Type != schema.ChoiceQuestion {
					continue
				}
				require.Len(t, q.Options, DistractorCount+1)
				require.GreaterOrEqual(t, q.Correct, 0)
				require.Less(t, q.Correct, len(q.Options))
				assert.Equal(t, fmt.Sprintf("role %d", q.ID), q.Options[q.Correct])
				assert.Equal(t, choice, q.ID)
				choice++
			}
			assert.Equal(t, want, choice)
		})
	}
}

func TestQuizBuilder_QuestionLayout(t *testing.T) {
	store := schema.EntityStore{
		Characters: characters(4),
		Events: []schema.Event{
			{Name: "E1"}, {Name: "E2"}, {Name: "E3"}, {Name: "E4"},
		},
	}
	store.Characters[0].Description = fmt.Sprintf("%0150d", 0)

	b := QuizBuilder{Distractors: NewDistractorGenerator(nil), Rand: seeded()}
	quiz := b.Build(context.Background(), store)

	require.Len(t, quiz.Questions, 4+3+1)

	var ids []int
	for _, q := range quiz.Questions {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 5, 6, 7, 7}, ids)

	tf := quiz.Questions[4]
	assert.Equal(t, schema.TrueFalseQuestion, tf.Type)
	assert.True(t, tf.Answer)
	assert.Contains(t, tf.Text, "E1")

	matching := quiz.Questions[7]
	assert.Equal(t, schema.MatchingQuestion, matching.Type)
	assert.Equal(t, 2, matching.Points)
	require.Len(t, matching.Pairs, MatchingPairs)
	assert.Equal(t, "Character 0", matching.Pairs[0].Character)
	assert.Len(t, []rune(matching.Pairs[0].Description), MatchingDescriptionRunes)
}

func TestQuizBuilder_NoMatchingBelowThreeCharacters(t *testing.T) {
	b := QuizBuilder{Distractors: NewDistractorGenerator(nil), Rand: seeded()}
	quiz := b.Build(context.Background(), schema.EntityStore{Characters: characters(2)})

	for _, q := range quiz.Questions {
		assert.NotEqual(t, schema.MatchingQuestion, q.Type)
	}
	assert.Len(t, quiz.Questions, 2)
}

func TestQuizBuilder_ParallelDistractorsKeepOrder(t *testing.T) {
	src := &subjectDistractors{}
	b := QuizBuilder{Distractors: src, Rand: seeded(), Workers: 4}
	quiz := b.Build(context.Background(), schema.EntityStore{Characters: characters(5)})

	require.Len(t, quiz.Questions, 5+1)
	for i, q := range quiz.Questions[:5] {
		assert.Equal(t, i, q.ID)
		assert.Equal(t, fmt.Sprintf("Who is Character %d?", i), q.Text)
		for _, opt := range q.Options {
			if opt == q.Options[q.Correct] {
				continue
			}
			assert.Contains(t, opt, fmt.Sprintf("Character %d wrong", i))
		}
	}
	assert.LessOrEqual(t, src.peak.Load(), int32(4))
}

func TestQuizBuilder_SequentialByDefault(t *testing.T) {
	src := &subjectDistractors{}
	b := QuizBuilder{Distractors: src, Rand: seeded()}
	b.Build(context.Background(), schema.EntityStore{Characters: characters(5)})
	assert.Equal(t, int32(1), src.peak.Load())
}

func TestShuffleOptions_TracksIndexNotValue(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		options, correct := shuffleOptions(rand.New(rand.NewPCG(seed, seed)), "same", []string{"same", "b", "c"})

		perm := rand.New(rand.NewPCG(seed, seed)).Perm(4)
		want := slices.Index(perm, 0)
		assert.Equal(t, want, correct, "seed %d", seed)
		assert.Equal(t, "same", options[correct])
	}
}

func TestQuizBuilder_CollidingDistractorStillValid(t *testing.T) {
	b := QuizBuilder{Distractors: echoDistractors{}, Rand: seeded()}
	quiz := b.Build(context.Background(), schema.EntityStore{Characters: characters(2)})

	for _, q := range quiz.Questions {
		require.Len(t, q.Options, 4)
		assert.Equal(t, q.Options[q.Correct], fmt.Sprintf("role %d", q.ID))
	}
}

func TestQuizBuilder_MissingRoleUsesUnknown(t *testing.T) {
	store := schema.EntityStore{Characters: []schema.Character{{Name: "A"}, {Name: "B", Role: "king"}}}
	b := QuizBuilder{Distractors: NewDistractorGenerator(nil), Rand: seeded()}
	quiz := b.Build(context.Background(), store)

	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, "Unknown", quiz.Questions[0].Options[quiz.Questions[0].Correct])
}

func TestQuizBuilder_ZeroValue(t *testing.T) {
	var b QuizBuilder
	quiz := b.Build(context.Background(), SampleStore())

	require.Len(t, quiz.Questions, 5)
	for _, q := range quiz.Questions[:3] {
		require.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, "Another character")
	}
}
