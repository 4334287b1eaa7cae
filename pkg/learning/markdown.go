package learning

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"learngame/pkg/schema"
	"learngame/pkg/utils"
)

const (
	correctMark = "✓ "
	wrongMark   = "○ "
)

// BuildMarkdown renders the store and the first quiz questions as markdown.
func BuildMarkdown(store schema.EntityStore, questions []schema.Question, now time.Time) string {
	var md strings.Builder
	md.WriteString("# Study Notes\n\n")
	fmt.Fprintf(&md, "*Created: %s*\n\n", now.Format(dateTimeForm))

	if len(store.Characters) > 0 {
		md.WriteString("## Characters\n\n")
		for _, c := range utils.Head(store.Characters, MaxMarkdownItems) {
			fmt.Fprintf(&md, "### %s\n", cmp.Or(c.Name, untitled))
			fmt.Fprintf(&md, "- **Role**: %s\n", c.Role)
			fmt.Fprintf(&md, "- **Description**: %s\n\n", c.Description)
		}
	}

	if len(store.Events) > 0 {
		md.WriteString("## Events\n\n")
		for i, e := range utils.Head(store.Events, MaxMarkdownItems) {
			fmt.Fprintf(&md, "### %d. %s\n", i+1, cmp.Or(e.Name, untitled))
			fmt.Fprintf(&md, "- **Description**: %s\n", e.Description)
			if len(e.Participants) > 0 {
				fmt.Fprintf(&md, "- **Participants**: %s\n", strings.Join(e.Participants, ", "))
			}
			md.WriteString("\n")
		}
	}

	if len(store.Locations) > 0 {
		md.WriteString("## Locations\n\n")
		for _, l := range utils.Head(store.Locations, MaxMarkdownItems) {
			fmt.Fprintf(&md, "### %s\n", cmp.Or(l.Name, untitled))
			fmt.Fprintf(&md, "- **Description**: %s\n\n", l.Description)
		}
	}

	if len(store.Objects) > 0 {
		md.WriteString("## Objects\n\n")
		for _, o := range utils.Head(store.Objects, MaxMarkdownItems) {
			fmt.Fprintf(&md, "### %s\n", cmp.Or(o.Name, untitled))
			fmt.Fprintf(&md, "- **Purpose**: %s\n\n", o.Purpose)
		}
	}

	if len(questions) > 0 {
		md.WriteString("## Test Questions\n\n")
		for _, q := range utils.Head(questions, MarkdownQuestions) {
			fmt.Fprintf(&md, "### %s\n", q.Text)
			if q.Type == schema.ChoiceQuestion {
				for j, option := range q.Options {
					prefix := wrongMark
					if j == q.Correct {
						prefix = correctMark
					}
					fmt.Fprintf(&md, "- %s%s\n", prefix, option)
				}
			}
			md.WriteString("\n")
		}
	}

	return md.String()
}
