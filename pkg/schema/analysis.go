package schema

import "strings"

type ContentType string

const (
	Narrative ContentType = "NARRATIVE"
	Process   ContentType = "PROCESS"
	Structure ContentType = "STRUCTURE"
	Concept   ContentType = "CONCEPT"
	Mixed     ContentType = "MIXED"
)

// ParseContentType normalizes s and reports whether it names a known content type.
func ParseContentType(s string) (ContentType, bool) {
	t := ContentType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case Narrative, Process, Structure, Concept, Mixed:
		return t, true
	}
	return "", false
}

// Classification is the model's answer to the content-type question.
type Classification struct {
	PrimaryType         string   `json:"primary_type" jsonschema:"enum=NARRATIVE,enum=PROCESS,enum=STRUCTURE,enum=CONCEPT,enum=MIXED" jsonschema_description:"Dominant content type"`
	SecondaryTypes      []string `json:"secondary_types" jsonschema_description:"Up to two dominant types when primary_type is MIXED, otherwise empty"`
	SplitRecommendation string   `json:"split_recommendation" jsonschema:"enum=single_topic,enum=can_split,enum=should_split" jsonschema_description:"Whether the material should be split into chapters"`
	Confidence          float64  `json:"confidence" jsonschema_description:"Confidence between 0 and 1"`
	Reason              string   `json:"reason" jsonschema_description:"One or two sentence rationale"`
}

// ContentAnalysis is the classifier output attached to every result.
// ClassificationFailed is set when the values are the local fallback.
type ContentAnalysis struct {
	PrimaryType          ContentType   `json:"primary_type"`
	SecondaryTypes       []ContentType `json:"secondary_types"`
	SplitRecommendation  string        `json:"split_recommendation"`
	Confidence           float64       `json:"confidence"`
	Reason               string        `json:"reason"`
	ClassificationFailed bool          `json:"classification_failed"`
}

type DistractorSet struct {
	Distractors []string `json:"distractors" jsonschema_description:"Exactly three wrong but plausible answers"`
}

// Narrative is the model's answer for narrative material.
type Narrative struct {
	Story                string                `json:"story" jsonschema_description:"Short story of a few paragraphs using the given characters, events and locations"`
	Dialog               Dialog                `json:"dialog" jsonschema_description:"Dialogue between two of the characters"`
	InteractiveQuestions []InteractiveQuestion `json:"interactive_questions" jsonschema_description:"Two comprehension questions about the story"`
}

type Dialog struct {
	Participants []string     `json:"participants" jsonschema_description:"The two speaking characters"`
	Lines        []DialogLine `json:"lines" jsonschema_description:"Dialogue lines in order"`
}

type DialogLine struct {
	Speaker string `json:"speaker" jsonschema_description:"Name of the speaking character"`
	Text    string `json:"text" jsonschema_description:"What the character says"`
}

type InteractiveQuestion struct {
	Question string   `json:"question" jsonschema_description:"Question text"`
	Options  []string `json:"options" jsonschema_description:"Answer options"`
	Correct  int      `json:"correct" jsonschema_description:"Zero-based index of the correct option"`
}

// SpecializedContent carries type-specific material. The zero value encodes as {}.
type SpecializedContent struct {
	Type                 ContentType           `json:"type,omitempty"`
	Story                string                `json:"story,omitempty"`
	Dialog               *Dialog               `json:"dialog,omitempty"`
	InteractiveQuestions []InteractiveQuestion `json:"interactive_questions,omitempty"`
}
