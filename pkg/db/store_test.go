package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/txus/jjigae/pkg/prestudy"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Ensure single connection to avoid separate in-memory DBs per connection.
	db.SetMaxOpenConns(1)
	if err := InitDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestInitDBCreatesSchema(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, table := range []string{"notes", "cards", "hanjas"} {
		var name string
		if err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name); err != nil {
			t.Fatalf("%s table missing: %v", table, err)
		}
	}

	// Running the migrations again is a no-op.
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}
}

func TestCreateOrGetNote(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	n := Note{GUID: "g-1", Word: "감정", Silhouette: "_ _", Deck: "Korean", Tags: []string{"prestudy", "topik"}, Rank: 846, Difficulty: "B"}
	id1, err := CreateOrGetNote(db, n)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	n.Hanja = "感情"
	n.English = "emotion"
	id2, err := CreateOrGetNote(db, n)
	if err != nil {
		t.Fatalf("get note: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected same id, got %d and %d", id1, id2)
	}

	got, err := GetNoteByGUID(db, "g-1")
	if err != nil {
		t.Fatalf("GetNoteByGUID: %v", err)
	}
	if got.Hanja != "感情" || got.English != "emotion" {
		t.Errorf("empty fields not filled on re-add: %+v", got)
	}
	if got.Rank != 846 || got.Difficulty != "B" || got.Deck != "Korean" {
		t.Errorf("unexpected note: %+v", got)
	}
	if !reflect.DeepEqual(got.Tags, []string{"prestudy", "topik"}) {
		t.Errorf("tags = %v", got.Tags)
	}

	// A user edit is not overwritten.
	if _, err := db.Exec(`UPDATE notes SET english = 'feeling' WHERE id = ?`, id1); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateOrGetNote(db, n); err != nil {
		t.Fatal(err)
	}
	got, _ = GetNoteByGUID(db, "g-1")
	if got.English != "feeling" {
		t.Errorf("english overwritten: %q", got.English)
	}
}

func TestCreateOrGetNoteValidates(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := CreateOrGetNote(db, Note{Word: "감정"}); err == nil {
		t.Error("expected error for missing guid")
	}
	if _, err := CreateOrGetNote(db, Note{GUID: "g", Word: "  "}); err == nil {
		t.Error("expected error for blank word")
	}
}

func TestUnrankedNote(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := CreateOrGetNote(db, Note{GUID: "g-2", Word: "향유", Deck: "Korean"}); err != nil {
		t.Fatal(err)
	}
	notes, err := NotesByDeck(db, "Korean")
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || notes[0].Rank != 0 {
		t.Fatalf("notes = %+v", notes)
	}
	if notes[0].AddedAt.IsZero() {
		t.Error("added_at not set")
	}
}

func TestCards(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	noteID, err := CreateOrGetNote(db, Note{GUID: "g-3", Word: "과학"})
	if err != nil {
		t.Fatal(err)
	}
	for _, tmpl := range Templates {
		if _, err := EnsureCard(db, noteID, tmpl); err != nil {
			t.Fatalf("EnsureCard(%s): %v", tmpl, err)
		}
	}
	again, err := EnsureCard(db, noteID, TemplateRecognition)
	if err != nil {
		t.Fatal(err)
	}

	cards, err := CardsForNote(db, noteID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %v", cards)
	}
	if cards[0].ID != again {
		t.Errorf("EnsureCard created a duplicate: %d vs %d", again, cards[0].ID)
	}
	for _, c := range cards {
		if c.State != CardNew || c.Suspended {
			t.Errorf("new card has wrong state: %s", c)
		}
	}

	if err := SetCardState(db, cards[0].ID, CardReview); err != nil {
		t.Fatal(err)
	}
	if err := SetSuspended(db, cards[1].ID, true); err != nil {
		t.Fatal(err)
	}
	cards, _ = CardsForNote(db, noteID)
	if cards[0].State != CardReview || !cards[1].Suspended {
		t.Errorf("updates not applied: %v", cards)
	}

	if err := SetCardState(db, cards[0].ID, "due"); err == nil {
		t.Error("expected error for invalid state")
	}
	if err := SetSuspended(db, 9999, true); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows for missing card, got %v", err)
	}
	if _, err := EnsureCard(db, 0, TemplateRecall); err == nil {
		t.Error("expected error for zero note id")
	}
}

// addNote creates a note with one card per state entry.
func addNote(t *testing.T, db DBExecutor, word string, cards ...Card) {
	t.Helper()
	noteID, err := CreateOrGetNote(db, Note{GUID: "guid-" + word, Word: word})
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range cards {
		id, err := EnsureCard(db, noteID, Templates[i])
		if err != nil {
			t.Fatal(err)
		}
		if err := SetCardState(db, id, c.State); err != nil {
			t.Fatal(err)
		}
		if err := SetSuspended(db, id, c.Suspended); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWordsForQuery(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	addNote(t, db, "발전", Card{State: CardNew}, Card{State: CardNew})
	addNote(t, db, "과학", Card{State: CardReview}, Card{State: CardLearning})
	addNote(t, db, "예술", Card{State: CardNew, Suspended: true}, Card{State: CardNew, Suspended: true})
	addNote(t, db, "권리", Card{State: CardNew, Suspended: true}, Card{State: CardNew})
	addNote(t, db, "참여", Card{State: CardReview, Suspended: true}, Card{State: CardNew})

	tests := []struct {
		query string
		want  []string
	}{
		{"is:new", []string{"권리", "발전", "예술", "참여"}},
		{"-is:new", []string{"과학", "참여"}},
		{"is:suspended", []string{"권리", "예술", "참여"}},
		{"-is:suspended", []string{"과학", "권리", "발전", "참여"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := WordsForQuery(context.Background(), db, tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WordsForQuery(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}

	if _, err := WordsForQuery(context.Background(), db, "is:due"); !errors.Is(err, ErrUnknownQuery) {
		t.Errorf("expected ErrUnknownQuery, got %v", err)
	}
}

func TestHanja(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, ok, err := LookupHanja(db, "감정"); err != nil || ok {
		t.Fatalf("empty table: ok=%v err=%v", ok, err)
	}
	for _, h := range []string{"感情", "鑑定", "感情"} {
		if err := InsertHanja(db, h, "감정"); err != nil {
			t.Fatalf("InsertHanja(%s): %v", h, err)
		}
	}
	got, ok, err := LookupHanja(db, "감정")
	if err != nil || !ok || got != "感情" {
		t.Errorf("LookupHanja = %q, %v, %v; want first row 感情", got, ok, err)
	}
	var count int
	db.QueryRow(`SELECT COUNT(*) FROM hanjas`).Scan(&count)
	if count != 2 {
		t.Errorf("expected duplicates ignored, got %d rows", count)
	}
	if err := InsertHanja(db, "", "감정"); err == nil {
		t.Error("expected error for empty hanja")
	}
}

func TestCollectionStudyRecord(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "collection.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	addNote(t, c.DB, "과학", Card{State: CardReview}, Card{State: CardReview})
	addNote(t, c.DB, "예술", Card{State: CardNew, Suspended: true}, Card{State: CardNew, Suspended: true})
	addNote(t, c.DB, "권리", Card{State: CardNew, Suspended: true}, Card{State: CardNew})
	addNote(t, c.DB, "발전", Card{State: CardNew}, Card{State: CardNew})

	studied, err := prestudy.WordsAlreadyStudied(context.Background(), c)
	if err != nil {
		t.Fatalf("WordsAlreadyStudied: %v", err)
	}
	if got, want := studied.Sorted(), []string{"과학", "예술"}; !reflect.DeepEqual(got, want) {
		t.Errorf("already studied = %v, want %v", got, want)
	}

	if err := InsertHanja(c.DB, "權利", "권리"); err != nil {
		t.Fatal(err)
	}
	if h, ok, err := c.LookupHanja("권리"); err != nil || !ok || h != "權利" {
		t.Errorf("LookupHanja = %q, %v, %v", h, ok, err)
	}
}

func TestOpenInMemory(t *testing.T) {
	c, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()
	words, err := c.Words(context.Background(), prestudy.QueryNew)
	if err != nil {
		t.Fatal(err)
	}
	if words.Len() != 0 {
		t.Errorf("fresh collection has words: %v", words.Sorted())
	}
}
