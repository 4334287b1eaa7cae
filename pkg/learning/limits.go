package learning

// Item caps and truncation lengths used by the builders. Lengths are in runes.
const (
	// MaxGuideItems caps every study guide section.
	MaxGuideItems = 10
	// MaxMarkdownItems caps every markdown entity section.
	MaxMarkdownItems = 10
	// MarkdownQuestions is how many quiz questions the markdown export repeats.
	MarkdownQuestions = 5

	// MaxCharacterCards caps character flashcards (difficulty 1).
	MaxCharacterCards = 15
	// MaxEventCards caps event flashcards (difficulty 2).
	MaxEventCards = 10
	// MaxHintParticipants is how many participants an event card hint names.
	MaxHintParticipants = 2

	// MaxChoiceQuestions caps multiple-choice questions, one per character.
	MaxChoiceQuestions = 5
	// MinCharactersForChoice is the character count below which no
	// multiple-choice questions are built.
	MinCharactersForChoice = 2
	// MaxTrueFalseQuestions caps true/false questions, one per event.
	MaxTrueFalseQuestions = 3
	// TrueFalseIDOffset is the id of the first true/false question.
	TrueFalseIDOffset = MaxChoiceQuestions
	// MatchingPairs is the number of characters in the matching question.
	MatchingPairs = 3
	// MinCharactersForMatching is the character count required for a matching question.
	MinCharactersForMatching = 3
	// MatchingDescriptionRunes truncates matching descriptions.
	MatchingDescriptionRunes = 100

	// DistractorCount is the number of wrong options per choice question.
	DistractorCount = 3
	// DistractorContextRunes caps the source text embedded in a distractor prompt.
	DistractorContextRunes = 1000

	// ClassifierSamples is how many entities per category the classifier prompt lists.
	ClassifierSamples = 3
	// ClassifierSampleRunes truncates each classifier sample line.
	ClassifierSampleRunes = 120

	// NarrativeCharacters, NarrativeEvents and NarrativeLocations cap the
	// entity names passed to the narrative prompt.
	NarrativeCharacters = 5
	NarrativeEvents     = 5
	NarrativeLocations  = 3

	// EngineContextRunes caps the source text an Engine keeps for distractor prompts.
	EngineContextRunes = 5000
	// ExtractionTextRunes caps the source text sent for entity extraction.
	ExtractionTextRunes = 8000
)
