package schema

import (
	"encoding/json"
	"fmt"
)

type QuestionType string

const (
	ChoiceQuestion    QuestionType = "choice"
	TrueFalseQuestion QuestionType = "true_false"
	MatchingQuestion  QuestionType = "matching"
)

// Question is a tagged union over the quiz question variants. On the wire
// "correct" is an option index for choice questions and a boolean for
// true/false questions.
type Question struct {
	ID     int          `json:"id"`
	Type   QuestionType `json:"type"`
	Text   string       `json:"text"`
	Points int          `json:"points"`

	Options     []string `json:"options,omitempty"`
	Correct     int      `json:"-"`
	Explanation string   `json:"explanation,omitempty"`

	Answer bool `json:"-"`

	Pairs []MatchingPair `json:"pairs,omitempty"`
}

type MatchingPair struct {
	Character   string `json:"character"`
	Description string `json:"description"`
}

type questionAlias struct {
	ID          int             `json:"id"`
	Type        QuestionType    `json:"type"`
	Text        string          `json:"text"`
	Points      int             `json:"points"`
	Options     []string        `json:"options,omitempty"`
	Correct     json.RawMessage `json:"correct,omitempty"`
	Explanation string          `json:"explanation,omitempty"`
	Pairs       []MatchingPair  `json:"pairs,omitempty"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	a := questionAlias{
		ID:          q.ID,
		Type:        q.Type,
		Text:        q.Text,
		Points:      q.Points,
		Options:     q.Options,
		Explanation: q.Explanation,
		Pairs:       q.Pairs,
	}

	var err error
	switch q.Type {
	case ChoiceQuestion:
		a.Correct, err = json.Marshal(q.Correct)
	case TrueFalseQuestion:
		a.Correct, err = json.Marshal(q.Answer)
	}
	if err != nil {
		return nil, err
	}

	return json.Marshal(a)
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var a questionAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	*q = Question{
		ID:          a.ID,
		Type:        a.Type,
		Text:        a.Text,
		Points:      a.Points,
		Options:     a.Options,
		Explanation: a.Explanation,
		Pairs:       a.Pairs,
	}
	if len(a.Correct) == 0 {
		return nil
	}

	switch a.Type {
	case ChoiceQuestion:
		if err := json.Unmarshal(a.Correct, &q.Correct); err != nil {
			return fmt.Errorf("choice question %d: %w", a.ID, err)
		}
	case TrueFalseQuestion:
		if err := json.Unmarshal(a.Correct, &q.Answer); err != nil {
			return fmt.Errorf("true/false question %d: %w", a.ID, err)
		}
	}

	return nil
}
