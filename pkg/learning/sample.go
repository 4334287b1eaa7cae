package learning

import "learngame/pkg/schema"

// SampleText and SampleStore are a small Greek mythology example for
// trying the pipeline without a document.
const SampleText = `Greek mythology. Heracles is the son of Zeus and Alcmene. Hera, the wife of Zeus, persecuted Heracles.
Zeus is the supreme god of Olympus. Heracles performed twelve labours, including slaying the Nemean lion.`

func SampleStore() schema.EntityStore {
	return schema.EntityStore{
		Characters: []schema.Character{
			{Name: "Heracles", Role: "hero", Description: "Son of Zeus who performed twelve labours"},
			{Name: "Hera", Role: "goddess", Description: "Wife of Zeus who persecuted Heracles"},
			{Name: "Zeus", Role: "supreme god", Description: "Ruler of Olympus, god of sky and thunder"},
		},
		Events: []schema.Event{
			{Name: "Slaying of the Nemean lion", Description: "The first labour of Heracles", Participants: []string{"Heracles", "Nemean lion"}},
		},
		Locations: []schema.Location{
			{Name: "Nemea", Description: "Where the Nemean lion lived"},
		},
	}
}
