package schema

type FlashcardType string

const (
	CharacterCard FlashcardType = "character"
	EventCard     FlashcardType = "event"
)

type Flashcard struct {
	ID         int           `json:"id"`
	Type       FlashcardType `json:"type"`
	Front      string        `json:"front"`
	Back       string        `json:"back"`
	Hint       string        `json:"hint"`
	Difficulty int           `json:"difficulty"`
}

type Quiz struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

type GuideSection struct {
	Title string      `json:"title"`
	Type  SectionType `json:"type"`
	Items []GuideItem `json:"items"`
}

type SectionType string

const (
	CharactersSection SectionType = "characters"
	TimelineSection   SectionType = "timeline"
	LocationsSection  SectionType = "locations"
	ObjectsSection    SectionType = "objects"
)

// GuideItem is one entry of a study-guide section. Only the fields relevant to
// the section type are set.
type GuideItem struct {
	Order        int      `json:"order,omitempty"`
	Name         string   `json:"name"`
	Role         string   `json:"role,omitempty"`
	Description  string   `json:"description,omitempty"`
	Purpose      string   `json:"purpose,omitempty"`
	Participants []string `json:"participants,omitempty"`
}

type StudyGuide struct {
	Title     string         `json:"title"`
	CreatedAt string         `json:"created_at"`
	Sections  []GuideSection `json:"sections"`
}

type Stats struct {
	TotalCharacters int    `json:"total_characters"`
	TotalEvents     int    `json:"total_events"`
	TotalLocations  int    `json:"total_locations"`
	TotalObjects    int    `json:"total_objects"`
	TotalFlashcards int    `json:"total_flashcards"`
	TotalQuestions  int    `json:"total_questions"`
	ProcessingTime  string `json:"processing_time"`
}

// Materials is everything derived from one Entity Store in a single pass.
type Materials struct {
	StudyGuide         StudyGuide         `json:"study_guide"`
	Flashcards         []Flashcard        `json:"flashcards"`
	Test               Quiz               `json:"test"`
	Markdown           string             `json:"markdown"`
	Stats              Stats              `json:"stats"`
	ContentAnalysis    ContentAnalysis    `json:"content_analysis"`
	SpecializedContent SpecializedContent `json:"specialized_content"`
}

type UploadResult struct {
	ID              string          `json:"id"`
	Filename        string          `json:"filename"`
	TextPreview     string          `json:"text_preview"`
	StructuredData  EntityStore     `json:"structured_data"`
	ContentAnalysis ContentAnalysis `json:"content_analysis"`
	AllMaterials    Materials       `json:"all_materials"`
	Status          string          `json:"status"`
}
