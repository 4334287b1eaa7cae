package learning

import (
	"cmp"
	"time"

	"learngame/pkg/schema"
	"learngame/pkg/utils"
)

const (
	untitled     = "Untitled"
	dateTimeForm = "02.01.2006 15:04"
)

// BuildStudyGuide projects the store into sections. A section is present only
// when its entity list is non-empty.
func BuildStudyGuide(store schema.EntityStore, now time.Time) schema.StudyGuide {
	guide := schema.StudyGuide{
		Title:     "Study Guide",
		CreatedAt: now.Format(dateTimeForm),
		Sections:  []schema.GuideSection{},
	}

	if len(store.Characters) > 0 {
		section := schema.GuideSection{Title: "👤 Characters", Type: schema.CharactersSection}
		for _, c := range utils.Head(store.Characters, MaxGuideItems) {
			section.Items = append(section.Items, schema.GuideItem{
				Name:        cmp.Or(c.Name, untitled),
				Role:        c.Role,
				Description: c.Description,
			})
		}
		guide.Sections = append(guide.Sections, section)
	}

	if len(store.Events) > 0 {
		section := schema.GuideSection{Title: "⏳ Timeline", Type: schema.TimelineSection}
		for i, e := range utils.Head(store.Events, MaxGuideItems) {
			section.Items = append(section.Items, schema.GuideItem{
				Order:        i + 1,
				Name:         cmp.Or(e.Name, untitled),
				Description:  e.Description,
				Participants: e.Participants,
			})
		}
		guide.Sections = append(guide.Sections, section)
	}

	if len(store.Locations) > 0 {
		section := schema.GuideSection{Title: "📍 Locations", Type: schema.LocationsSection}
		for _, l := range utils.Head(store.Locations, MaxGuideItems) {
			section.Items = append(section.Items, schema.GuideItem{
				Name:        cmp.Or(l.Name, untitled),
				Description: l.Description,
			})
		}
		guide.Sections = append(guide.Sections, section)
	}

	if len(store.Objects) > 0 {
		section := schema.GuideSection{Title: "📦 Objects", Type: schema.ObjectsSection}
		for _, o := range utils.Head(store.Objects, MaxGuideItems) {
			section.Items = append(section.Items, schema.GuideItem{
				Name:    cmp.Or(o.Name, untitled),
				Purpose: o.Purpose,
			})
		}
		guide.Sections = append(guide.Sections, section)
	}

	return guide
}
