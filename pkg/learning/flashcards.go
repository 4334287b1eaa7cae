package learning

import (
	"cmp"
	"fmt"
	"strings"

	"learngame/pkg/schema"
	"learngame/pkg/utils"
)

// BuildFlashcards turns characters and events into flashcards. Card ids are
// their positions in the returned slice.
func BuildFlashcards(store schema.EntityStore) []schema.Flashcard {
	cards := make([]schema.Flashcard, 0, min(len(store.Characters), MaxCharacterCards)+min(len(store.Events), MaxEventCards))

	for _, char := range utils.Head(store.Characters, MaxCharacterCards) {
		cards = append(cards, schema.Flashcard{
			ID:         len(cards),
			Type:       schema.CharacterCard,
			Front:      fmt.Sprintf("Who is %s?", cmp.Or(char.Name, "this character")),
			Back:       char.Role + "\n\n" + char.Description,
			Hint:       "Role: " + char.Role,
			Difficulty: 1,
		})
	}

	for _, event := range utils.Head(store.Events, MaxEventCards) {
		participants := "none"
		if len(event.Participants) > 0 {
			participants = strings.Join(utils.Head(event.Participants, MaxHintParticipants), ", ")
		}
		cards = append(cards, schema.Flashcard{
			ID:         len(cards),
			Type:       schema.EventCard,
			Front:      fmt.Sprintf("What happened in '%s'?", cmp.Or(event.Name, "this event")),
			Back:       event.Description,
			Hint:       "Participants: " + participants,
			Difficulty: 2,
		})
	}

	return cards
}
