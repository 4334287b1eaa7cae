package learning

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"learngame/pkg/inference"
	"learngame/pkg/schema"
	"learngame/pkg/utils"
)

// Engine derives every study material from one Entity Store. It is built per
// request; the card and question caches only serve a single pass.
type Engine struct {
	store   schema.EntityStore
	context string

	inf         inference.Inferencer
	distractors DistractorSource
	rng         *rand.Rand
	now         func() time.Time
	workers     int

	cards     []schema.Flashcard
	questions []schema.Question
}

type Option func(*Engine)

// WithInferencer sets the model used for classification, distractors and
// narrative content. Without one every call site uses its fallback.
func WithInferencer(inf inference.Inferencer) Option {
	return func(e *Engine) { e.inf = inf }
}

// WithDistractors overrides the distractor source built from the inferencer.
func WithDistractors(d DistractorSource) Option {
	return func(e *Engine) { e.distractors = d }
}

func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithWorkers bounds concurrent distractor calls.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

func NewEngine(store schema.EntityStore, rawText string, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		context: utils.Truncate(rawText, EngineContextRunes),
		now:     time.Now,
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.distractors == nil {
		e.distractors = NewDistractorGenerator(e.inf)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return e
}

func (e *Engine) StudyGuide() schema.StudyGuide {
	return BuildStudyGuide(e.store, e.now())
}

func (e *Engine) Flashcards() []schema.Flashcard {
	e.cards = BuildFlashcards(e.store)
	return e.cards
}

func (e *Engine) Quiz(ctx context.Context) schema.Quiz {
	b := QuizBuilder{
		Distractors: e.distractors,
		Rand:        e.rng,
		Workers:     e.workers,
		Context:     e.context,
	}
	quiz := b.Build(ctx, e.store)
	e.questions = quiz.Questions
	return quiz
}

// Markdown renders the store plus the questions of the last Quiz call.
func (e *Engine) Markdown() string {
	return BuildMarkdown(e.store, e.questions, e.now())
}

// Stats counts entities and the materials built so far in this pass.
func (e *Engine) Stats() schema.Stats {
	return schema.Stats{
		TotalCharacters: len(e.store.Characters),
		TotalEvents:     len(e.store.Events),
		TotalLocations:  len(e.store.Locations),
		TotalObjects:    len(e.store.Objects),
		TotalFlashcards: len(e.cards),
		TotalQuestions:  len(e.questions),
		ProcessingTime:  e.now().Format(time.TimeOnly),
	}
}

func (e *Engine) Classify(ctx context.Context) schema.ContentAnalysis {
	return Classify(ctx, e.inf, e.store)
}

func (e *Engine) Narrative(ctx context.Context) (schema.SpecializedContent, error) {
	return BuildNarrative(ctx, e.inf, e.store)
}

// CreateAllMaterials runs the deterministic builders, classifies the content
// and, for narrative material, attaches generated narrative content.
func (e *Engine) CreateAllMaterials(ctx context.Context) schema.Materials {
	log.Debug("creating learning materials")

	m := schema.Materials{
		StudyGuide: e.StudyGuide(),
		Flashcards: e.Flashcards(),
		Test:       e.Quiz(ctx),
	}
	m.Markdown = e.Markdown()
	m.Stats = e.Stats()
	m.ContentAnalysis = e.Classify(ctx)

	if m.ContentAnalysis.PrimaryType == schema.Narrative {
		content, err := e.Narrative(ctx)
		if err != nil {
			log.Warn("skipping narrative content", "error", err)
		} else {
			m.SpecializedContent = content
		}
	}

	log.Info("materials created",
		"sections", len(m.StudyGuide.Sections),
		"flashcards", len(m.Flashcards),
		"questions", len(m.Test.Questions),
		"type", m.ContentAnalysis.PrimaryType)
	return m
}
