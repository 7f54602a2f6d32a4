// Package vocabtest builds a reference vocabulary for tests. Ranks 1..Ranked
// are contiguous, so the window of the first N terms is exactly the terms of
// rank N or better, as in the real frequency list.
package vocabtest

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/txus/jjigae/pkg/vocab"
)

// Ranked is the number of ranked rows; every rank from 1 to Ranked is present.
const Ranked = 4500

// Row is one raw row of the reference list.
type Row struct {
	Rank, Word, Kind, Notes, Difficulty string
}

// Rows are the named entries of the sample list. The remaining ranks are filled
// with synthetic words that never appear in test sentences.
var Rows = []Row{
	{"1", "하다", "동", "", "A"},
	{"2", "있다", "형", "", "A"},
	{"27", "사람", "명", "", "A"},
	{"45", "그", "관", "", "A"},
	{"86", "모든", "관", "", "A"},
	{"143", "가지다", "동", "", "A"},
	{"276", "문화", "명", "文化", "A"},
	{"402", "발전", "명", "發展", "B"},
	{"487", "과학", "명", "科學", "B"},
	{"633", "예술", "명", "藝術", "B"},
	{"846", "감정1", "명", "感情", "B"},
	{"901", "권리", "명", "權利", "B"},
	{"1222", "참여", "명", "參與", "B"},
	{"1409", "공유", "명", "共有", "A"},
	{"2211", "자유롭다", "형", "free", "C"},
	{"3001", "감정2", "명", "鑑定", "C"},
	{"3720", "혜택", "명", "惠澤", "B"},
	{"", "향유", "명", "享有", "B"},
	{"", "공동체", "명", "共同體", "C"},
}

// FillerWord returns the synthetic word used for rank n.
func FillerWord(n int) string {
	return "채움" + string(rune(0xAC00+n))
}

// CSV renders the sample list with a header. Named rows come first and the
// filler follows, so loading has to sort.
func CSV() string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"rank", "word", "kind", "notes", "difficulty"})

	taken := make(map[string]bool, len(Rows))
	for _, r := range Rows {
		taken[r.Rank] = true
		_ = w.Write([]string{r.Rank, r.Word, r.Kind, r.Notes, r.Difficulty})
	}
	for n := Ranked; n >= 1; n-- {
		rank := strconv.Itoa(n)
		if taken[rank] {
			continue
		}
		_ = w.Write([]string{rank, FillerWord(n), "명", "", fillerDifficulty(n)})
	}
	w.Flush()
	return b.String()
}

func fillerDifficulty(n int) string {
	switch {
	case n <= 1500:
		return "A"
	case n <= 3000:
		return "B"
	default:
		return "C"
	}
}

// Store loads the sample list, failing the test on error.
func Store(tb testing.TB) *vocab.Store {
	tb.Helper()
	s, err := vocab.Load(strings.NewReader(CSV()))
	if err != nil {
		tb.Fatalf("load sample vocabulary: %v", err)
	}
	if got, want := s.Len(), Ranked+2; got != want {
		tb.Fatalf("sample vocabulary has %d terms, want %d", got, want)
	}
	return s
}

// Must parses a single row, panicking on error. Handy for table tests.
func Must(r Row) vocab.Term {
	t, err := vocab.NewTerm(r.Rank, r.Word, r.Kind, r.Notes, r.Difficulty)
	if err != nil {
		panic(fmt.Sprintf("vocabtest: %v", err))
	}
	return t
}
