package deck

import (
	"strings"

	"github.com/google/uuid"

	"github.com/txus/jjigae/pkg/db"
	"github.com/txus/jjigae/pkg/vocab"
)

// noteNamespace scopes note GUIDs to this application.
var noteNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("jjigae.note"))

// GUID identifies the note for a word and its hanja, so adding the same term
// twice updates one note.
func GUID(word, hanja string) string {
	return uuid.NewSHA1(noteNamespace, []byte(word+"\x00"+hanja)).String()
}

// BuildNote renders a term as a note of deck. English is left for the
// learner to fill in.
func BuildNote(t vocab.Term, deck string, tags []string) db.Note {
	comment := t.Notes
	if t.Ambiguous {
		comment = strings.TrimSpace(comment + " (amb)")
	}
	rank, _ := t.Rank.Value()

	return db.Note{
		GUID:       GUID(t.Word, t.Hanja),
		Word:       t.Word,
		Hanja:      t.Hanja,
		Silhouette: Silhouette(t.Word),
		Comment:    comment,
		Deck:       deck,
		Tags:       tags,
		Rank:       rank,
		Difficulty: string(t.Difficulty),
	}
}
