package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/txus/jjigae/pkg/wordset"
)

// columns of the reference list: rank, word, kind, notes, difficulty.
const columns = 5

// Store is the reference vocabulary sorted by rank. It is built once and never
// mutated afterwards, so a single Store may be shared by concurrent readers.
type Store struct {
	terms []Term
	// first maps a base word to the position of its rank-earliest term.
	first map[string]int
}

// NewStore builds a Store from already parsed terms, sorting them by rank.
func NewStore(terms []Term) *Store {
	sorted := slices.Clone(terms)
	SortByRank(sorted)

	first := make(map[string]int, len(sorted))
	for i, t := range sorted {
		if _, ok := first[t.Word]; !ok {
			first[t.Word] = i
		}
	}
	return &Store{terms: sorted, first: first}
}

// LoadFile reads the reference list at path. Any failure is a *LoadError.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return s, nil
}

// Load parses a reference list with a header row followed by rows of
// (rank, word, kind, notes, difficulty). Nothing is returned on a bad row.
func Load(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // column count is checked per row below

	// Skip header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return NewStore(nil), nil
		}
		return nil, &LoadError{Line: 1, Err: fmt.Errorf("read header: %w", err)}
	}

	var terms []Term
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var line int
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &LoadError{Line: line, Err: fmt.Errorf("read row: %w", err)}
		}
		line, _ := reader.FieldPos(0)
		if len(record) != columns {
			return nil, &LoadError{Line: line, Err: fmt.Errorf("expected %d columns, got %d", columns, len(record))}
		}

		t, err := NewTerm(record[0], record[1], record[2], record[3], record[4])
		if err != nil {
			return nil, &LoadError{Line: line, Err: err}
		}
		terms = append(terms, t)
	}

	return NewStore(terms), nil
}

// Len returns the number of terms in the store.
func (s *Store) Len() int { return len(s.terms) }

// Terms returns a copy of all terms in rank order.
func (s *Store) Terms() []Term { return slices.Clone(s.terms) }

// Window returns a copy of the first maxVocab terms. Out-of-range bounds are
// clamped, so zero or a negative bound yields an empty window.
func (s *Store) Window(maxVocab int) []Term {
	return slices.Clone(s.terms[:s.bound(maxVocab)])
}

func (s *Store) bound(maxVocab int) int {
	return max(0, min(maxVocab, len(s.terms)))
}

// Lookup returns the rank-earliest term for word among the first maxVocab
// terms. The boolean is false when there is no such term.
func (s *Store) Lookup(word string, maxVocab int) (Term, bool) {
	i, ok := s.first[norm.NFC.String(word)]
	if !ok || i >= s.bound(maxVocab) {
		return Term{}, false
	}
	return s.terms[i], true
}

// Filter returns, in rank order, the terms among the first maxVocab whose word
// is in words. Each word contributes at most one term, its rank-earliest.
func (s *Store) Filter(words wordset.Set, maxVocab int) []Term {
	n := s.bound(maxVocab)
	positions := make([]int, 0, len(words))
	for w := range words {
		if i, ok := s.first[norm.NFC.String(w)]; ok && i < n {
			positions = append(positions, i)
		}
	}
	sort.Ints(positions)
	positions = slices.Compact(positions)

	out := make([]Term, len(positions))
	for j, i := range positions {
		out[j] = s.terms[i]
	}
	return out
}

// SortByRank sorts terms ascending by rank, unranked last, keeping the input
// order of equal ranks.
func SortByRank(terms []Term) {
	slices.SortStableFunc(terms, func(a, b Term) int {
		switch {
		case a.Rank.Less(b.Rank):
			return -1
		case b.Rank.Less(a.Rank):
			return 1
		default:
			return 0
		}
	})
}
