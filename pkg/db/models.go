package db

import (
	"fmt"
	"time"
)

// Note is one studied word.
type Note struct {
	ID         int64
	GUID       string
	Word       string
	English    string
	Hanja      string
	Silhouette string
	Comment    string
	Deck       string
	Tags       []string
	Rank       int // 0 when unranked
	Difficulty string
	AddedAt    time.Time
}

// CardState is the scheduling state of a card.
type CardState string

const (
	CardNew      CardState = "new"
	CardLearning CardState = "learning"
	CardReview   CardState = "review"
)

// Valid reports whether s is a known state.
func (s CardState) Valid() bool {
	switch s {
	case CardNew, CardLearning, CardReview:
		return true
	}
	return false
}

// Card templates generated for every note.
const (
	TemplateRecognition = "Recognition"
	TemplateRecall      = "Recall"
)

// Templates lists the card templates of a note in creation order.
var Templates = []string{TemplateRecognition, TemplateRecall}

// Card is one reviewable side of a note.
type Card struct {
	ID        int64
	NoteID    int64
	Template  string
	State     CardState
	Suspended bool
}

func (c Card) String() string {
	s := fmt.Sprintf("card %d (%s, %s)", c.ID, c.Template, c.State)
	if c.Suspended {
		s += " suspended"
	}
	return s
}
