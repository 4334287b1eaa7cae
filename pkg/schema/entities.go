package schema

// EntityStore is the set of entities extracted from a source document.
// Every list is optional; a missing key decodes to an empty list.
type EntityStore struct {
	Characters []Character  `json:"characters" jsonschema_description:"People, gods, creatures or other actors mentioned in the text"`
	Events     []Event      `json:"events" jsonschema_description:"Key happenings in the order they appear in the text"`
	Locations  []Location   `json:"locations" jsonschema_description:"Places where the events take place"`
	Objects    []ObjectItem `json:"objects" jsonschema_description:"Important artifacts, items or tools"`
}

type Character struct {
	Name        string `json:"name" jsonschema_description:"Canonical name"`
	Role        string `json:"role" jsonschema_description:"Short role label (e.g. hero, goddess, teacher)"`
	Description string `json:"description" jsonschema_description:"One or two sentence description"`
}

type Event struct {
	Name         string   `json:"name" jsonschema_description:"Short event title"`
	Description  string   `json:"description" jsonschema_description:"What happened"`
	Participants []string `json:"participants" jsonschema_description:"Names of those who took part"`
}

type Location struct {
	Name        string `json:"name" jsonschema_description:"Place name"`
	Description string `json:"description" jsonschema_description:"Short description of the place"`
}

type ObjectItem struct {
	Name    string `json:"name" jsonschema_description:"Object name"`
	Purpose string `json:"purpose" jsonschema_description:"What the object is for"`
}

// Empty reports whether the store holds no entities at all.
func (s EntityStore) Empty() bool {
	return len(s.Characters) == 0 && len(s.Events) == 0 && len(s.Locations) == 0 && len(s.Objects) == 0
}

// Normalized returns s with nil lists replaced by empty ones so it encodes
// as [] rather than null.
func (s EntityStore) Normalized() EntityStore {
	if s.Characters == nil {
		s.Characters = []Character{}
	}
	if s.Events == nil {
		s.Events = []Event{}
	}
	if s.Locations == nil {
		s.Locations = []Location{}
	}
	if s.Objects == nil {
		s.Objects = []ObjectItem{}
	}
	return s
}
