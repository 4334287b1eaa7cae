package diff

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/aryann/difflib"

	"learngame/pkg/schema"
	"learngame/pkg/utils"
)

type ChangeType int

const (
	Unchanged ChangeType = iota
	Added
	Removed
	Modified
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

type WordDelta struct {
	Op   Op
	Text string
}

type StringDiff struct {
	Old    string
	New    string
	Deltas []WordDelta
}

type FieldDiff struct {
	Field string
	Str   StringDiff
}

// EntityDiff describes one entity matched by name across two stores.
type EntityDiff struct {
	Name       string
	State      ChangeType
	FieldDiffs []FieldDiff
	// Joined and Left list participants added to or removed from an event.
	Joined []string
	Left   []string
}

// StoreDiff compares two extractions of the same material.
type StoreDiff struct {
	Characters []EntityDiff
	Events     []EntityDiff
	Locations  []EntityDiff
	Objects    []EntityDiff
}

// Changed reports whether any entity was added, removed or modified.
func (d StoreDiff) Changed() bool {
	for _, list := range [][]EntityDiff{d.Characters, d.Events, d.Locations, d.Objects} {
		for _, e := range list {
			if e.State != Unchanged {
				return true
			}
		}
	}
	return false
}

// renameOverlap is the word overlap at which an unmatched event is treated as
// a renamed version of another.
const renameOverlap = 0.7

func Stores(oldS, newS schema.EntityStore) StoreDiff {
	return StoreDiff{
		Characters: byName(oldS.Characters, newS.Characters, func(c schema.Character) string { return c.Name },
			func(c schema.Character) map[string]string {
				return map[string]string{"role": c.Role, "description": c.Description}
			}),
		Events: Events(oldS.Events, newS.Events),
		Locations: byName(oldS.Locations, newS.Locations, func(l schema.Location) string { return l.Name },
			func(l schema.Location) map[string]string { return map[string]string{"description": l.Description} }),
		Objects: byName(oldS.Objects, newS.Objects, func(o schema.ObjectItem) string { return o.Name },
			func(o schema.ObjectItem) map[string]string { return map[string]string{"purpose": o.Purpose} }),
	}
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// byName pairs entities by case-insensitive name and diffs their fields.
func byName[T any](oldL, newL []T, name func(T) string, fields func(T) map[string]string) []EntityDiff {
	omap := map[string]T{}
	nmap := map[string]T{}
	keys := map[string]struct{}{}
	for _, v := range oldL {
		k := norm(name(v))
		omap[k] = v
		keys[k] = struct{}{}
	}
	for _, v := range newL {
		k := norm(name(v))
		nmap[k] = v
		keys[k] = struct{}{}
	}

	out := make([]EntityDiff, 0, len(keys))
	for k := range keys {
		o, okO := omap[k]
		n, okN := nmap[k]
		switch {
		case okO && !okN:
			out = append(out, EntityDiff{Name: name(o), State: Removed})
		case !okO && okN:
			out = append(out, EntityDiff{Name: name(n), State: Added, FieldDiffs: fieldDiffs(nil, fields(n))})
		default:
			fd := fieldDiffs(fields(o), fields(n))
			out = append(out, EntityDiff{Name: name(n), State: stateOf(len(fd) > 0), FieldDiffs: fd})
		}
	}
	slices.SortFunc(out, func(a, b EntityDiff) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

func fieldDiffs(oldF, newF map[string]string) []FieldDiff {
	names := make([]string, 0, len(newF))
	for f := range newF {
		names = append(names, f)
	}
	slices.Sort(names)

	var fd []FieldDiff
	for _, f := range names {
		a, b := oldF[f], newF[f]
		switch {
		case oldF == nil && b != "":
			fd = append(fd, FieldDiff{Field: f, Str: inserted(b)})
		case oldF != nil && a != b:
			fd = append(fd, FieldDiff{Field: f, Str: Strings(a, b)})
		}
	}
	return fd
}

func stateOf(changed bool) ChangeType {
	if changed {
		return Modified
	}
	return Unchanged
}

// Events pairs events by name first, then pairs the rest when their names are
// close enough to be a rewording, then reports what is left as added or removed.
func Events(oldE, newE []schema.Event) []EntityDiff {
	oUsed := make([]bool, len(oldE))
	nUsed := make([]bool, len(newE))
	var out []EntityDiff

	for i, o := range oldE {
		for j, n := range newE {
			if nUsed[j] || norm(o.Name) != norm(n.Name) {
				continue
			}
			out = append(out, eventDiff(o, n))
			oUsed[i], nUsed[j] = true, true
			break
		}
	}

	for i, o := range oldE {
		if oUsed[i] {
			continue
		}
		bestJ, best := -1, 0.0
		for j, n := range newE {
			if nUsed[j] {
				continue
			}
			if s := utils.WordOverlap(o.Name, n.Name); s > best {
				bestJ, best = j, s
			}
		}
		if bestJ >= 0 && best >= renameOverlap {
			d := eventDiff(o, newE[bestJ])
			d.State = Modified
			d.FieldDiffs = append([]FieldDiff{{Field: "name", Str: Strings(o.Name, newE[bestJ].Name)}}, d.FieldDiffs...)
			out = append(out, d)
			oUsed[i], nUsed[bestJ] = true, true
		}
	}

	for i, o := range oldE {
		if !oUsed[i] {
			out = append(out, EntityDiff{Name: o.Name, State: Removed})
		}
	}
	for j, n := range newE {
		if !nUsed[j] {
			d := EntityDiff{Name: n.Name, State: Added, Joined: slices.Clone(n.Participants)}
			if n.Description != "" {
				d.FieldDiffs = []FieldDiff{{Field: "description", Str: inserted(n.Description)}}
			}
			out = append(out, d)
		}
	}

	slices.SortStableFunc(out, func(a, b EntityDiff) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

func eventDiff(o, n schema.Event) EntityDiff {
	d := EntityDiff{Name: n.Name}
	if o.Description != n.Description {
		d.FieldDiffs = append(d.FieldDiffs, FieldDiff{Field: "description", Str: Strings(o.Description, n.Description)})
	}
	d.Joined, d.Left = setDiff(o.Participants, n.Participants)
	d.State = stateOf(len(d.FieldDiffs) > 0 || len(d.Joined) > 0 || len(d.Left) > 0)
	return d
}

func setDiff(oldL, newL []string) (added, removed []string) {
	has := func(list []string, s string) bool {
		return slices.ContainsFunc(list, func(v string) bool { return norm(v) == norm(s) })
	}
	for _, s := range newL {
		if !has(oldL, s) {
			added = append(added, s)
		}
	}
	for _, s := range oldL {
		if !has(newL, s) {
			removed = append(removed, s)
		}
	}
	return added, removed
}

var wordRe = regexp.MustCompile(`\s+|[^\s]+`)

func inserted(s string) StringDiff {
	return StringDiff{New: s, Deltas: []WordDelta{{Op: Insert, Text: s}}}
}

// Strings computes a word-level diff of a and b. Whitespace runs are kept as
// tokens so the deltas concatenate back to the original strings.
func Strings(a, b string) StringDiff {
	if a == b {
		return StringDiff{Old: a, New: b, Deltas: []WordDelta{{Op: Equal, Text: a}}}
	}
	recs := difflib.Diff(wordRe.FindAllString(a, -1), wordRe.FindAllString(b, -1))
	deltas := make([]WordDelta, 0, len(recs))
	for _, r := range recs {
		switch r.Delta {
		case difflib.Common:
			deltas = append(deltas, WordDelta{Op: Equal, Text: r.Payload})
		case difflib.LeftOnly:
			deltas = append(deltas, WordDelta{Op: Delete, Text: r.Payload})
		case difflib.RightOnly:
			deltas = append(deltas, WordDelta{Op: Insert, Text: r.Payload})
		}
	}
	return StringDiff{Old: a, New: b, Deltas: coalesce(deltas)}
}

// coalesce merges neighbouring deltas of the same op.
func coalesce(in []WordDelta) []WordDelta {
	out := make([]WordDelta, 0, len(in))
	for _, d := range in {
		if n := len(out); n > 0 && out[n-1].Op == d.Op {
			out[n-1].Text += d.Text
			continue
		}
		out = append(out, d)
	}
	return out
}
