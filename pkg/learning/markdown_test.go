package learning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"learngame/pkg/schema"
)

func TestBuildMarkdown_Empty(t *testing.T) {
	md := BuildMarkdown(schema.EntityStore{}, nil, fixedNow)
	assert.Equal(t, "# Study Notes\n\n*Created: 05.03.2024 14:30*\n\n", md)
}

func TestBuildMarkdown_Sections(t *testing.T) {
	store := SampleStore()
	store.Objects = []schema.ObjectItem{{Name: "Club", Purpose: "weapon"}}

	md := BuildMarkdown(store, nil, fixedNow)
	assert.Contains(t, md, "## Characters\n\n### Heracles\n- **Role**: hero\n")
	assert.Contains(t, md, "## Events\n\n### 1. ")
	assert.Contains(t, md, "## Locations\n\n")
	assert.Contains(t, md, "## Objects\n\n### Club\n- **Purpose**: weapon\n\n")
	assert.NotContains(t, md, "## Test Questions")
}

func TestBuildMarkdown_Questions(t *testing.T) {
	questions := []schema.Question{
		{ID: 0, Type: schema.ChoiceQuestion, Text: "Who is A?", Options: []string{"x", "y", "z", "w"}, Correct: 2},
		{ID: 5, Type: schema.TrueFalseQuestion, Text: "It happened.", Answer: true},
	}
	for i := range 6 {
		questions = append(questions, schema.Question{ID: 10 + i, Type: schema.TrueFalseQuestion, Text: "filler"})
	}

	md := BuildMarkdown(schema.EntityStore{}, questions, fixedNow)

	assert.Contains(t, md, "### Who is A?\n- ○ x\n- ○ y\n- ✓ z\n- ○ w\n\n")
	assert.Contains(t, md, "### It happened.\n\n")
	assert.Equal(t, 1, strings.Count(md, "✓"))
	assert.Equal(t, MarkdownQuestions-2, strings.Count(md, "### filler"))
}
