package prestudy

import (
	"context"
	"fmt"

	"github.com/txus/jjigae/pkg/vocab"
	"github.com/txus/jjigae/pkg/wordset"
)

// Query names a set of words in the learner's collection, using the search
// syntax of the flashcard host.
type Query string

const (
	QueryNew          Query = "is:new"
	QuerySuspended    Query = "is:suspended"
	QueryNotSuspended Query = "-is:suspended"
	QueryNotNew       Query = "-is:new"
)

// Queries lists every query a StudyRecord has to answer.
var Queries = []Query{QueryNew, QuerySuspended, QueryNotSuspended, QueryNotNew}

// StudyRecord reports the base words of the notes matching a query. A note
// matches when any of its cards does, so a word can be in both a query and
// its negation.
type StudyRecord interface {
	Words(ctx context.Context, q Query) (wordset.Set, error)
}

// WordSets is a study record held in memory.
type WordSets struct {
	New          wordset.Set
	Suspended    wordset.Set
	NotSuspended wordset.Set
	NotNew       wordset.Set
}

// Words implements StudyRecord.
func (w WordSets) Words(_ context.Context, q Query) (wordset.Set, error) {
	var s wordset.Set
	switch q {
	case QueryNew:
		s = w.New
	case QuerySuspended:
		s = w.Suspended
	case QueryNotSuspended:
		s = w.NotSuspended
	case QueryNotNew:
		s = w.NotNew
	default:
		return nil, fmt.Errorf("unknown query %q", q)
	}
	if s == nil {
		s = wordset.New()
	}
	return s, nil
}

// AlreadyStudied returns NotNew ∪ (Suspended − NotSuspended): words that
// graduated past new, plus suspended words with no unsuspended card.
func (w WordSets) AlreadyStudied() wordset.Set {
	return w.NotNew.Union(w.Suspended.Difference(w.NotSuspended))
}

// LoadWordSets asks r for every query.
func LoadWordSets(ctx context.Context, r StudyRecord) (WordSets, error) {
	var w WordSets
	for _, q := range Queries {
		s, err := r.Words(ctx, q)
		if err != nil {
			return WordSets{}, fmt.Errorf("query %s: %w", q, err)
		}
		switch q {
		case QueryNew:
			w.New = s
		case QuerySuspended:
			w.Suspended = s
		case QueryNotSuspended:
			w.NotSuspended = s
		case QueryNotNew:
			w.NotNew = s
		}
	}
	return w, nil
}

// WordsAlreadyStudied returns the words of r the learner has already met.
func WordsAlreadyStudied(ctx context.Context, r StudyRecord) (wordset.Set, error) {
	w, err := LoadWordSets(ctx, r)
	if err != nil {
		return nil, err
	}
	return w.AlreadyStudied(), nil
}

// UnknownWords returns the terms Extract finds in text minus the words
// already studied according to r, sorted by rank.
func (e *Engine) UnknownWords(ctx context.Context, text string, r StudyRecord, opts Options) ([]vocab.Term, error) {
	return e.NewSession(text, r).UnknownWords(ctx, opts)
}

func subtract(terms []vocab.Term, studied wordset.Set) []vocab.Term {
	out := make([]vocab.Term, 0, len(terms))
	for _, t := range terms {
		if !studied.Has(t.Word) {
			out = append(out, t)
		}
	}
	vocab.SortByRank(out)
	return out
}
