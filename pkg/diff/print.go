package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	heading   = color.New(color.FgCyan, color.Bold)
	addedC    = color.New(color.FgGreen, color.Underline)
	removedC  = color.New(color.FgRed, color.CrossedOut)
	modifiedC = color.New(color.FgYellow)
	faintC    = color.New(color.Faint)
)

func tag(s ChangeType) string {
	switch s {
	case Added:
		return color.GreenString("[+]")
	case Removed:
		return color.RedString("[-]")
	case Modified:
		return modifiedC.Sprint("[~]")
	}
	return faintC.Sprint("[=]")
}

func render(sd StringDiff) string {
	var b strings.Builder
	for _, d := range sd.Deltas {
		switch d.Op {
		case Equal:
			b.WriteString(d.Text)
		case Insert:
			b.WriteString(addedC.Sprint(d.Text))
		case Delete:
			b.WriteString(removedC.Sprint(d.Text))
		}
	}
	return b.String()
}

// Print writes the changed entities of every kind. Unchanged entities are
// listed only when verbose is set.
func (d StoreDiff) Print(w io.Writer, verbose bool) {
	section := func(title string, list []EntityDiff) {
		var shown []EntityDiff
		for _, e := range list {
			if verbose || e.State != Unchanged {
				shown = append(shown, e)
			}
		}
		if len(shown) == 0 {
			return
		}
		fmt.Fprintln(w, heading.Sprint(title))
		for _, e := range shown {
			fmt.Fprintf(w, "  %s %s\n", tag(e.State), e.Name)
			for _, f := range e.FieldDiffs {
				fmt.Fprintf(w, "    %s: %s\n", f.Field, render(f.Str))
			}
			for _, p := range e.Left {
				fmt.Fprintf(w, "    participant: %s\n", removedC.Sprint(p))
			}
			for _, p := range e.Joined {
				fmt.Fprintf(w, "    participant: %s\n", addedC.Sprint(p))
			}
		}
	}

	section("Characters", d.Characters)
	section("Events", d.Events)
	section("Locations", d.Locations)
	section("Objects", d.Objects)
}
