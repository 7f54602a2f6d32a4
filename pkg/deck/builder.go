// Package deck turns accepted vocabulary terms into notes of the learner's
// collection. Terms are enriched concurrently on a worker pool and written in
// their original order through a transactional batch writer.
package deck

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/txus/jjigae/pkg/db"
	"github.com/txus/jjigae/pkg/vocab"
)

// HanjaLookup finds the hanja of a Hangul word.
type HanjaLookup interface {
	LookupHanja(hangul string) (string, bool, error)
}

// Builder adds terms to a collection as notes with one card per template.
type Builder struct {
	DB *sql.DB
	// Hanja fills in terms without hanja. nil skips the lookup.
	Hanja     HanjaLookup
	BatchSize int
	Workers   int

	// Logger is optional; nil disables logging.
	Logger *slog.Logger
	// OnProgress is called with the number of notes committed so far.
	OnProgress func(current, total int)

	// PoolFactory allows tests to inject custom worker pool implementations.
	PoolFactory func(workers, queue int) Pool
}

// NewBuilder creates a Builder writing to c.
func NewBuilder(c *db.Collection) *Builder {
	return &Builder{
		DB:        c.DB,
		Hanja:     c,
		BatchSize: 50,
		Workers:   4,
	}
}

// AddTerms persists terms as notes of deck tagged with tags and returns how
// many notes were committed. Re-adding a term updates its existing note.
func (b *Builder) AddTerms(ctx context.Context, terms []vocab.Term, deck string, tags []string) (int, error) {
	if len(terms) == 0 {
		return 0, nil
	}

	notes, err := b.enrich(ctx, terms, deck, tags)
	if err != nil {
		return 0, err
	}

	var mu sync.Mutex
	committed := 0
	bw := NewBatchWriter(b.DB, b.BatchSize)
	bw.OnCommit = func(n int) {
		mu.Lock()
		committed += n
		current := committed
		mu.Unlock()
		if b.OnProgress != nil {
			b.OnProgress(current, len(notes))
		}
	}

	for _, n := range notes {
		note := n
		if err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
			return writeNote(tx, note)
		}); err != nil {
			_ = bw.Close()
			return 0, err
		}
	}
	err = bw.Close()

	mu.Lock()
	defer mu.Unlock()
	b.logger().Info("added notes", "deck", deck, "notes", committed, "terms", len(terms))
	return committed, err
}

func writeNote(tx *sql.Tx, note db.Note) error {
	if tx == nil {
		return fmt.Errorf("no database configured")
	}
	noteID, err := db.CreateOrGetNote(tx, note)
	if err != nil {
		return fmt.Errorf("persist note %s: %w", note.Word, err)
	}
	for _, tmpl := range db.Templates {
		if _, err := db.EnsureCard(tx, noteID, tmpl); err != nil {
			return fmt.Errorf("persist %s card of %s: %w", tmpl, note.Word, err)
		}
	}
	return nil
}

// enrich builds the notes of terms on the worker pool, keeping input order.
func (b *Builder) enrich(ctx context.Context, terms []vocab.Term, deck string, tags []string) ([]db.Note, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := b.Workers
	var wp Pool
	if b.PoolFactory != nil {
		wp = b.PoolFactory(workers, workers*2)
	} else {
		wp = NewWorkerPool(workers, workers*2)
	}
	wp.Start(ctx)

	notes := make([]db.Note, len(terms))
	var errMu sync.Mutex
	var firstErr error
	fail := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
		cancel()
	}

	for i := range terms {
		idx := i
		job := func(ctx context.Context) error {
			note, err := b.buildNote(terms[idx], deck, tags)
			if err != nil {
				fail(err)
				return err
			}
			notes[idx] = note
			return nil
		}
		if err := wp.SubmitCtx(ctx, job); err != nil {
			if ctx.Err() == nil {
				fail(err)
			}
			break
		}
	}
	wp.Close()

	errMu.Lock()
	defer errMu.Unlock()
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// buildNote renders t and fills in missing hanja. The GUID is always that of
// the reference term, with or without the filled hanja.
func (b *Builder) buildNote(t vocab.Term, deck string, tags []string) (db.Note, error) {
	note := BuildNote(t, deck, tags)
	if note.Hanja == "" && b.Hanja != nil {
		hanja, ok, err := b.Hanja.LookupHanja(t.Word)
		if err != nil {
			return db.Note{}, fmt.Errorf("lookup hanja of %s: %w", t.Word, err)
		}
		if ok {
			note.Hanja = hanja
		}
	}
	return note, nil
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}
