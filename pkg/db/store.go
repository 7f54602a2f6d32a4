package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// ErrUnknownQuery is returned by WordsForQuery for a search it cannot answer.
var ErrUnknownQuery = errors.New("unknown collection query")

// CreateOrGetNote inserts n keyed by its GUID and returns the note id. An
// existing note keeps its fields; only empty english, hanja and comment are
// filled in, and rank and difficulty follow the latest reference list.
func CreateOrGetNote(db DBExecutor, n Note) (int64, error) {
	guid := strings.TrimSpace(n.GUID)
	if guid == "" {
		return 0, fmt.Errorf("note guid must be non-empty")
	}
	word := strings.TrimSpace(n.Word)
	if word == "" {
		return 0, fmt.Errorf("note word must be non-empty")
	}
	deck := n.Deck
	if deck == "" {
		deck = "Default"
	}

	var id int64
	query := `INSERT INTO notes (guid, word, english, hanja, silhouette, comment, deck, tags, frequency_rank, difficulty)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(guid)
			  DO UPDATE SET
			    english = COALESCE(NULLIF(notes.english, ''), excluded.english),
			    hanja = COALESCE(NULLIF(notes.hanja, ''), excluded.hanja),
			    comment = COALESCE(NULLIF(notes.comment, ''), excluded.comment),
			    frequency_rank = excluded.frequency_rank,
			    difficulty = excluded.difficulty
			  RETURNING id`

	err := db.QueryRow(query,
		guid, word, n.English, n.Hanja, n.Silhouette, n.Comment, deck,
		strings.Join(n.Tags, " "), nullableRank(n.Rank), n.Difficulty,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert note: %w", err)
	}
	return id, nil
}

// EnsureCard returns the id of the note's card for template, creating it in
// state new when missing.
func EnsureCard(db DBExecutor, noteID int64, template string) (int64, error) {
	if noteID <= 0 {
		return 0, fmt.Errorf("noteID must be positive")
	}
	if strings.TrimSpace(template) == "" {
		return 0, fmt.Errorf("template must be non-empty")
	}

	var id int64
	err := db.QueryRow(`INSERT INTO cards (note_id, template, state, suspended) VALUES (?, ?, ?, 0)
	ON CONFLICT(note_id, template) DO UPDATE SET template = cards.template
	RETURNING id`, noteID, template, string(CardNew)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert card: %w", err)
	}
	return id, nil
}

// SetCardState moves a card to state.
func SetCardState(db DBExecutor, cardID int64, state CardState) error {
	if !state.Valid() {
		return fmt.Errorf("invalid card state %q", state)
	}
	return updateCard(db, cardID, `UPDATE cards SET state = ? WHERE id = ?`, string(state))
}

// SetSuspended suspends or unsuspends a card.
func SetSuspended(db DBExecutor, cardID int64, suspended bool) error {
	v := 0
	if suspended {
		v = 1
	}
	return updateCard(db, cardID, `UPDATE cards SET suspended = ? WHERE id = ?`, v)
}

func updateCard(db DBExecutor, cardID int64, query string, value interface{}) error {
	if cardID <= 0 {
		return fmt.Errorf("cardID must be positive")
	}
	res, err := db.Exec(query, value, cardID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("card %d: %w", cardID, sql.ErrNoRows)
	}
	return nil
}

// queryConditions map a collection search to the card predicate a note needs
// at least one card to satisfy.
var queryConditions = map[string]string{
	"is:new":        `c.state = 'new'`,
	"-is:new":       `c.state != 'new'`,
	"is:suspended":  `c.suspended = 1`,
	"-is:suspended": `c.suspended = 0`,
}

// WordsForQuery returns the distinct words of the notes matching query. A
// note matches when any of its cards does.
func WordsForQuery(ctx context.Context, db DBExecutor, query string) ([]string, error) {
	cond, ok := queryConditions[strings.TrimSpace(query)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuery, query)
	}

	rows, err := db.QueryContext(ctx, `SELECT DISTINCT n.word FROM notes n
	WHERE EXISTS (SELECT 1 FROM cards c WHERE c.note_id = n.id AND `+cond+`)
	ORDER BY n.word`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertHanja records that hanja is read as hangul. Duplicates are ignored.
func InsertHanja(db DBExecutor, hanja, hangul string) error {
	hanja, hangul = strings.TrimSpace(hanja), strings.TrimSpace(hangul)
	if hanja == "" || hangul == "" {
		return fmt.Errorf("hanja and hangul must be non-empty")
	}
	_, err := db.Exec(`INSERT OR IGNORE INTO hanjas (hanja, hangul) VALUES (?, ?)`, hanja, hangul)
	return err
}

// LookupHanja returns the first hanja recorded for hangul.
func LookupHanja(db DBExecutor, hangul string) (string, bool, error) {
	var hanja string
	err := db.QueryRow(`SELECT hanja FROM hanjas WHERE hangul = ? ORDER BY id LIMIT 1`, strings.TrimSpace(hangul)).Scan(&hanja)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return hanja, true, nil
}

const noteColumns = `id, guid, word, english, hanja, silhouette, comment, deck, tags, frequency_rank, difficulty, added_at`

// GetNoteByGUID returns the note with guid.
func GetNoteByGUID(db DBExecutor, guid string) (Note, error) {
	rows, err := db.Query(`SELECT `+noteColumns+` FROM notes WHERE guid = ?`, guid)
	if err != nil {
		return Note{}, err
	}
	notes, err := scanNotes(rows)
	if err != nil {
		return Note{}, err
	}
	if len(notes) == 0 {
		return Note{}, sql.ErrNoRows
	}
	return notes[0], nil
}

// NotesByDeck returns the notes of deck in insertion order.
func NotesByDeck(db DBExecutor, deck string) ([]Note, error) {
	rows, err := db.Query(`SELECT `+noteColumns+` FROM notes WHERE deck = ? ORDER BY id`, deck)
	if err != nil {
		return nil, err
	}
	return scanNotes(rows)
}

func scanNotes(rows *sql.Rows) ([]Note, error) {
	defer rows.Close()
	var out []Note
	for rows.Next() {
		var n Note
		var tags string
		var rank sql.NullInt64
		var added sql.NullTime
		if err := rows.Scan(&n.ID, &n.GUID, &n.Word, &n.English, &n.Hanja, &n.Silhouette, &n.Comment,
			&n.Deck, &tags, &rank, &n.Difficulty, &added); err != nil {
			return nil, err
		}
		n.Tags = strings.Fields(tags)
		if rank.Valid {
			n.Rank = int(rank.Int64)
		}
		if added.Valid {
			n.AddedAt = added.Time
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CardsForNote returns the cards of a note in creation order.
func CardsForNote(db DBExecutor, noteID int64) ([]Card, error) {
	rows, err := db.Query(`SELECT id, note_id, template, state, suspended FROM cards WHERE note_id = ? ORDER BY id`, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Card
	for rows.Next() {
		var c Card
		var state string
		if err := rows.Scan(&c.ID, &c.NoteID, &c.Template, &state, &c.Suspended); err != nil {
			return nil, err
		}
		c.State = CardState(state)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// nullableRank returns nil for an unranked note (0) else the rank.
func nullableRank(v int) interface{} {
	if v <= 0 {
		return nil
	}
	return v
}

// NotesMissingHanja returns the notes with an empty hanja field in id order.
func NotesMissingHanja(db DBExecutor) ([]Note, error) {
	rows, err := db.Query(`SELECT ` + noteColumns + ` FROM notes WHERE hanja = '' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return scanNotes(rows)
}

// UpdateNoteHanja sets the hanja of a note.
func UpdateNoteHanja(db DBExecutor, noteID int64, hanja string) error {
	res, err := db.Exec(`UPDATE notes SET hanja = ? WHERE id = ?`, hanja, noteID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("note %d: %w", noteID, sql.ErrNoRows)
	}
	return nil
}

// CountHanjas returns the number of rows in the hanja table.
func CountHanjas(db DBExecutor) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM hanjas`).Scan(&n)
	return n, err
}
