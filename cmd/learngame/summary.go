package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"learngame/pkg/schema"
)

// printSummary writes the stats and the first quiz question with the correct
// option marked.
func printSummary(w io.Writer, m schema.Materials) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	s := m.Stats
	fmt.Fprintln(w, bold("Statistics"))
	fmt.Fprintf(w, "  characters: %d\n  events:     %d\n  locations:  %d\n  objects:    %d\n",
		s.TotalCharacters, s.TotalEvents, s.TotalLocations, s.TotalObjects)
	fmt.Fprintf(w, "  guide sections: %d, flashcards: %d, questions: %d\n",
		len(m.StudyGuide.Sections), s.TotalFlashcards, s.TotalQuestions)

	a := m.ContentAnalysis
	kind := string(a.PrimaryType)
	if a.ClassificationFailed {
		kind += yellow(" (fallback)")
	}
	fmt.Fprintf(w, "  content: %s, confidence %.2f\n", kind, a.Confidence)
	if m.SpecializedContent.Story != "" {
		fmt.Fprintf(w, "  narrative: story, %d questions\n", len(m.SpecializedContent.InteractiveQuestions))
	}

	if len(m.Test.Questions) == 0 {
		return
	}
	q := m.Test.Questions[0]
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("First question"))
	fmt.Fprintf(w, "  %s\n", q.Text)
	for i, option := range q.Options {
		if i == q.Correct {
			fmt.Fprintf(w, "    %s %s\n", green("✓"), green(option))
			continue
		}
		fmt.Fprintf(w, "    ○ %s\n", option)
	}
}
