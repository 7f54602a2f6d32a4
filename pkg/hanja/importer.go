package hanja

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/txus/jjigae/pkg/db"
)

// Importer copies a dictionary into a collection and fills in the hanja of
// notes that have none.
type Importer struct {
	conn    *sql.DB
	entries []Entry

	// Logger is optional; nil disables logging.
	Logger *slog.Logger

	// index is read-only after NewImporter.
	index map[string][]string
}

// NewImporter creates an importer and indexes entries by Hangul reading.
func NewImporter(conn *sql.DB, entries []Entry) *Importer {
	idx := make(map[string][]string)
	for _, e := range entries {
		idx[e.Hangul] = append(idx[e.Hangul], e.Hanja)
	}
	return &Importer{conn: conn, entries: entries, index: idx}
}

// LookupHanja returns the first spelling the dictionary lists for hangul. It
// lets an Importer stand in for the collection's table when building notes.
func (im *Importer) LookupHanja(hangul string) (string, bool, error) {
	spellings := im.index[hangul]
	if len(spellings) == 0 {
		return "", false, nil
	}
	return spellings[0], true, nil
}

// Import writes every entry to the collection's hanja table in one
// transaction and returns how many were new.
func (im *Importer) Import(ctx context.Context) (int, error) {
	tx, err := im.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	before, err := db.CountHanjas(tx)
	if err != nil {
		return 0, err
	}
	for i, e := range im.entries {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if err := db.InsertHanja(tx, e.Hanja, e.Hangul); err != nil {
			return 0, fmt.Errorf("insert %s (%s): %w", e.Hangul, e.Hanja, err)
		}
	}
	after, err := db.CountHanjas(tx)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	im.logger().Info("imported hanja", slog.Int("entries", len(im.entries)), slog.Int("new", after-before))
	return after - before, nil
}

// ProcessUpdates fills in the hanja of every note that has none and a reading
// in the dictionary. It returns the number of notes updated.
func (im *Importer) ProcessUpdates(ctx context.Context) (int, error) {
	notes, err := db.NotesMissingHanja(im.conn)
	if err != nil {
		return 0, err
	}

	type update struct {
		id    int64
		hanja string
	}
	var updates []update
	for _, n := range notes {
		hanja, ok, _ := im.LookupHanja(n.Word)
		if ok {
			updates = append(updates, update{n.ID, hanja})
		}
	}

	updated := 0
	for _, u := range updates {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		if err := db.UpdateNoteHanja(im.conn, u.id, u.hanja); err != nil {
			return updated, fmt.Errorf("update note %d: %w", u.id, err)
		}
		updated++
	}

	im.logger().Info("filled hanja", slog.Int("candidates", len(notes)), slog.Int("updated", updated))
	return updated, nil
}

func (im *Importer) logger() *slog.Logger {
	if im.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return im.Logger
}
