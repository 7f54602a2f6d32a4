// Package prestudy finds the words of a passage worth studying: the content
// words it uses that appear in the reference vocabulary, filtered by frequency
// window and difficulty, minus the words the learner has already studied.
package prestudy

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/txus/jjigae/pkg/morph"
	"github.com/txus/jjigae/pkg/vocab"
	"github.com/txus/jjigae/pkg/wordset"
)

// RecommendedVocabSize is the default frequency window.
const RecommendedVocabSize = 3500

// Options bound an extraction.
type Options struct {
	// MaxVocab limits matches to the first MaxVocab terms of the store.
	// Zero or negative yields nothing.
	MaxVocab int
	// MinDifficulty is the least advanced tier kept. See vocab.MeetsMinimum.
	MinDifficulty vocab.Difficulty
}

// DefaultExtractOptions keeps every tier.
func DefaultExtractOptions() Options {
	return Options{MaxVocab: RecommendedVocabSize, MinDifficulty: vocab.DifficultyA}
}

// DefaultStudyOptions drops tier A, which a learner at this window is
// assumed to know already.
func DefaultStudyOptions() Options {
	return Options{MaxVocab: RecommendedVocabSize, MinDifficulty: vocab.DifficultyB}
}

// ParseVocabSize reads a user-entered window size. Empty input means
// RecommendedVocabSize; anything that is not an integer means 0.
func ParseVocabSize(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return RecommendedVocabSize
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Engine matches passages against a reference vocabulary. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	store     *vocab.Store
	extractor *morph.Extractor

	// Logger is optional; nil disables logging.
	Logger *slog.Logger
}

// NewEngine returns an engine over store that segments text with analyzer.
func NewEngine(store *vocab.Store, analyzer morph.Analyzer) (*Engine, error) {
	if store == nil {
		return nil, errors.New("prestudy: nil vocabulary store")
	}
	extractor, err := morph.NewExtractor(analyzer)
	if err != nil {
		return nil, err
	}
	return &Engine{store: store, extractor: extractor}, nil
}

// Store returns the engine's vocabulary.
func (e *Engine) Store() *vocab.Store { return e.store }

// ExtractWords returns the content base words of text.
func (e *Engine) ExtractWords(text string) (wordset.Set, error) {
	return e.extractor.ExtractWords(text)
}

// Extract returns the reference terms used by text that fall inside the
// window and meet the minimum difficulty, one per word, in rank order.
func (e *Engine) Extract(text string, opts Options) ([]vocab.Term, error) {
	words, err := e.ExtractWords(text)
	if err != nil {
		return nil, err
	}
	terms := e.match(words, opts)
	e.logger().Debug("extracted terms",
		"words", words.Len(),
		"terms", len(terms),
		"max_vocab", opts.MaxVocab,
		"min_difficulty", string(opts.MinDifficulty),
	)
	return terms, nil
}

func (e *Engine) match(words wordset.Set, opts Options) []vocab.Term {
	candidates := e.store.Filter(words, opts.MaxVocab)
	out := candidates[:0]
	for _, t := range candidates {
		if vocab.MeetsMinimum(opts.MinDifficulty, t.Difficulty) {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
