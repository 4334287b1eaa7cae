package learning

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learngame/pkg/schema"
)

func TestClassify_NoInferencer(t *testing.T) {
	analysis := Classify(context.Background(), nil, SampleStore())
	assert.Equal(t, FallbackAnalysis(), analysis)
	assert.True(t, analysis.ClassificationFailed)
	assert.Equal(t, schema.Narrative, analysis.PrimaryType)
}

func TestClassify_ModelAnswer(t *testing.T) {
	stub := &stubInferencer{fn: func(system, user string) (string, error) {
		return "```json\n" + `{"primary_type":"mixed","secondary_types":["process","bogus","CONCEPT"],"split_recommendation":"Can_Split","confidence":1.7,"reason":" both "}` + "\n```", nil
	}}

	analysis := Classify(context.Background(), stub, SampleStore())

	assert.Equal(t, schema.ContentAnalysis{
		PrimaryType:         schema.Mixed,
		SecondaryTypes:      []schema.ContentType{schema.Process, schema.Concept},
		SplitRecommendation: "can_split",
		Confidence:          1,
		Reason:              "both",
	}, analysis)

	require.Len(t, stub.calls, 1)
	assert.Equal(t, classifySystemPrompt, stub.calls[0].System)
	assert.NotNil(t, stub.calls[0].Params.ResponseFormat.OfJSONSchema)
}

func TestClassify_Failures(t *testing.T) {
	cases := map[string]func(system, user string) (string, error){
		"error":        func(string, string) (string, error) { return "", errors.New("rate limited") },
		"prose":        func(string, string) (string, error) { return "It is a narrative text.", nil },
		"unknown type": func(string, string) (string, error) { return `{"primary_type":"POEM","confidence":0.9}`, nil },
		"trailing":     func(string, string) (string, error) { return `{"primary_type":"PROCESS"} and more`, nil },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			analysis := Classify(context.Background(), &stubInferencer{fn: fn}, SampleStore())
			assert.Equal(t, FallbackAnalysis(), analysis)
		})
	}
}

func TestClassifierSamples(t *testing.T) {
	store := SampleStore()
	store.Characters = append(store.Characters, schema.Character{Name: "Alcmene"})
	store.Characters[0].Description = strings.Repeat("x", 300)

	got := classifierSamples(store)

	assert.Contains(t, got, "CHARACTERS:\n- Heracles - hero - ")
	assert.NotContains(t, got, "Alcmene")
	assert.Contains(t, got, "OBJECTS:\n- (none)\n")
	assert.Contains(t, got, "Totals: 4 characters, 1 events, 1 locations, 0 objects.")
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), ClassifierSampleRunes+len("- ")+len("..."))
	}
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "a - c", joinNonEmpty(" - ", "a", " ", "c"))
	assert.Equal(t, "", joinNonEmpty(" - "))
}
