package vocab_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"github.com/txus/jjigae/pkg/vocab"
	"github.com/txus/jjigae/pkg/vocab/vocabtest"
	"github.com/txus/jjigae/pkg/wordset"
)

func TestLoadSortsByRank(t *testing.T) {
	s := vocabtest.Store(t)
	terms := s.Terms()

	for i := 1; i < len(terms); i++ {
		assert.False(t, terms[i].Rank.Less(terms[i-1].Rank),
			"term %d (%s) sorts before term %d (%s)", i, terms[i], i-1, terms[i-1])
	}

	first, _ := terms[0].Rank.Value()
	assert.Equal(t, 1, first)
	assert.Equal(t, "하다", terms[0].Word)

	// The two unranked rows come last, in input order.
	tail := terms[len(terms)-2:]
	assert.Equal(t, "향유", tail[0].Word)
	assert.Equal(t, "공동체", tail[1].Word)
	for _, term := range tail {
		assert.False(t, term.Rank.IsRanked())
	}
}

func TestLookupFinds(t *testing.T) {
	s := vocabtest.Store(t)

	term, ok := s.Lookup("감정", 1000)
	require.True(t, ok)
	n, _ := term.Rank.Value()
	assert.Equal(t, 846, n)
	assert.Equal(t, "감정", term.Word)
	assert.Equal(t, "感情", term.Hanja)
	assert.Empty(t, term.Notes)
	assert.Equal(t, vocab.DifficultyB, term.Difficulty)
	assert.True(t, term.Ambiguous)
}

func TestLookupDoesNotFind(t *testing.T) {
	s := vocabtest.Store(t)

	_, ok := s.Lookup("감정", 600)
	assert.False(t, ok)

	_, ok = s.Lookup("없는말", 10000)
	assert.False(t, ok)
}

func TestLookupIsMonotonic(t *testing.T) {
	s := vocabtest.Store(t)

	for _, word := range []string{"감정", "참여", "혜택", "향유", vocabtest.FillerWord(2500)} {
		var found vocab.Term
		seen := false
		for k := 0; k <= s.Len()+50; k += 50 {
			term, ok := s.Lookup(word, k)
			if seen {
				require.True(t, ok, "%s found earlier but not at bound %d", word, k)
				assert.Equal(t, found, term)
				continue
			}
			if ok {
				assert.Equal(t, word, term.Word)
				found, seen = term, true
			}
		}
		assert.True(t, seen, "%s never found", word)
	}
}

func TestLookupPrefersRankEarliestHomograph(t *testing.T) {
	s := vocabtest.Store(t)

	term, ok := s.Lookup("감정", s.Len())
	require.True(t, ok)
	n, _ := term.Rank.Value()
	assert.Equal(t, 846, n)
}

func TestWindowClamps(t *testing.T) {
	s := vocabtest.Store(t)

	assert.Empty(t, s.Window(0))
	assert.Empty(t, s.Window(-5))
	assert.Len(t, s.Window(10), 10)
	assert.Len(t, s.Window(s.Len()*2), s.Len())

	_, ok := s.Lookup("하다", 0)
	assert.False(t, ok)
	assert.Empty(t, s.Filter(wordset.New("하다"), -1))
}

func TestWindowIsACopy(t *testing.T) {
	s := vocabtest.Store(t)

	w := s.Window(2)
	w[0].Word = "zzz"

	term, ok := s.Lookup("하다", 2)
	require.True(t, ok)
	assert.Equal(t, "하다", term.Word)
	assert.Equal(t, "하다", s.Window(1)[0].Word)
}

func TestFilterNormalizesWords(t *testing.T) {
	s := vocabtest.Store(t)
	decomposed := norm.NFD.String("참여")
	require.NotEqual(t, "참여", decomposed)

	got := s.Filter(wordset.New(decomposed, "참여"), 3500)
	require.Len(t, got, 1)
	assert.Equal(t, "참여", got[0].Word)
}

func TestFilter(t *testing.T) {
	s := vocabtest.Store(t)
	words := wordset.New("감정", "참여", "혜택", "향유", "사람", "없는말")

	got := s.Filter(words, 3500)
	var gotWords []string
	for _, term := range got {
		gotWords = append(gotWords, term.Word)
	}
	// Rank order; 혜택 (3720) and unranked 향유 fall outside the window.
	assert.Equal(t, []string{"사람", "감정", "참여"}, gotWords)

	// One term per word even though 감정 has two homographs inside the window.
	all := s.Filter(wordset.New("감정"), s.Len())
	require.Len(t, all, 1)
	n, _ := all[0].Rank.Value()
	assert.Equal(t, 846, n)
}

func TestFilterBoundary(t *testing.T) {
	s := vocabtest.Store(t)
	words := wordset.New("참여")

	assert.Empty(t, s.Filter(words, 1000))
	assert.Len(t, s.Filter(words, 3500), 1)
	assert.Len(t, s.Filter(words, 1222), 1)
	assert.Empty(t, s.Filter(words, 1221))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"non numeric rank", "rank,word,kind,notes,difficulty\n1,사람,명,,A\nx,과학,명,,B\n", 3},
		{"missing column", "rank,word,kind,notes,difficulty\n1,사람,명,A\n", 2},
		{"extra column", "rank,word,kind,notes,difficulty\n1,사람,명,,A,extra\n", 2},
		{"zero rank", "rank,word,kind,notes,difficulty\n0,사람,명,,A\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := vocab.Load(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, vocab.ErrLoad)

			var le *vocab.LoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tt.wantLine, le.Line)
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	for _, input := range []string{"", "rank,word,kind,notes,difficulty\n"} {
		s, err := vocab.Load(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())
		_, ok := s.Lookup("사람", 3500)
		assert.False(t, ok)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	_, err := vocab.LoadFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, vocab.ErrLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("rank,word,kind,notes,difficulty\nnope,사람,명,,A\n"), 0o644))
	_, err = vocab.LoadFile(bad)
	var le *vocab.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, bad, le.Path)
	assert.Contains(t, err.Error(), "line 2")

	good := filepath.Join(dir, "vocab.csv")
	require.NoError(t, os.WriteFile(good, []byte(vocabtest.CSV()), 0o644))
	s, err := vocab.LoadFile(good)
	require.NoError(t, err)
	assert.Equal(t, vocabtest.Ranked+2, s.Len())
}

func TestSortByRankIsStable(t *testing.T) {
	terms := []vocab.Term{
		vocabtest.Must(vocabtest.Row{Word: "나", Difficulty: "A"}),
		vocabtest.Must(vocabtest.Row{Rank: "5", Word: "다", Difficulty: "A"}),
		vocabtest.Must(vocabtest.Row{Word: "가", Difficulty: "A"}),
		vocabtest.Must(vocabtest.Row{Rank: "2", Word: "라", Difficulty: "A"}),
	}
	vocab.SortByRank(terms)

	var words []string
	for _, term := range terms {
		words = append(words, term.Word)
	}
	assert.Equal(t, []string{"라", "다", "나", "가"}, words)
}
