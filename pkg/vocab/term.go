// Package vocab holds the ranked reference vocabulary: the Term model parsed
// from one row of the reference list and the rank-ordered Store built from it.
package vocab

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// Digits mark homographs in the reference list ("감정1", "감정2").
	reDigits = regexp.MustCompile(`[0-9]+`)
	// CJK Unified Ideographs; a notes field containing one is treated as hanja.
	reHanja = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)
)

// Rank is a term's frequency rank. The zero value is unranked.
type Rank struct {
	n int
}

// Unranked is the rank of a term that has no position in the frequency list.
var Unranked = Rank{}

// Ranked returns the rank n. Callers must pass a positive n.
func Ranked(n int) Rank { return Rank{n: n} }

// Value returns the numeric rank and whether the term is ranked at all.
func (r Rank) Value() (int, bool) { return r.n, r.n > 0 }

// IsRanked reports whether the term has a position in the frequency list.
func (r Rank) IsRanked() bool { return r.n > 0 }

// Less orders ranked terms ascending and places unranked terms after all of them.
func (r Rank) Less(other Rank) bool {
	switch {
	case !r.IsRanked():
		return false
	case !other.IsRanked():
		return true
	default:
		return r.n < other.n
	}
}

func (r Rank) String() string {
	if !r.IsRanked() {
		return "unranked"
	}
	return strconv.Itoa(r.n)
}

// Term is one reference-vocabulary entry.
type Term struct {
	Rank       Rank
	Word       string     // base form, disambiguation digits removed
	Kind       string     // part-of-speech column of the reference list
	Difficulty Difficulty // A, B or C as given by the list
	Hanja      string     // set only when the raw notes contained a hanja character
	Notes      string     // set only when Hanja is empty
	Ambiguous  bool       // the raw word carried a disambiguation digit
}

func (t Term) String() string {
	return fmt.Sprintf("%s (%s, %s, %q, %q)", t.Word, t.Difficulty, t.Rank, t.Hanja, t.Notes)
}

// NewTerm normalizes one raw row of the reference list. An empty rank means
// unranked; anything else must be a positive integer.
func NewTerm(rank, word, kind, notes, difficulty string) (Term, error) {
	r := Unranked
	if rank = strings.TrimSpace(rank); rank != "" {
		n, err := strconv.Atoi(rank)
		if err != nil {
			return Term{}, fmt.Errorf("rank %q is not an integer", rank)
		}
		if n <= 0 {
			return Term{}, fmt.Errorf("rank %d is not positive", n)
		}
		r = Ranked(n)
	}

	word = norm.NFC.String(strings.TrimSpace(word))
	t := Term{
		Rank:       r,
		Word:       reDigits.ReplaceAllString(word, ""),
		Kind:       strings.TrimSpace(kind),
		Difficulty: Difficulty(strings.TrimSpace(difficulty)),
		Ambiguous:  reDigits.MatchString(word),
	}

	if notes = norm.NFC.String(strings.TrimSpace(notes)); notes != "" {
		if reHanja.MatchString(notes) {
			t.Hanja = notes
		} else {
			t.Notes = notes
		}
	}
	return t, nil
}
