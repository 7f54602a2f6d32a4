// Package morph turns free text into the set of content-bearing base words it
// uses. The segmentation itself is done by an Analyzer; any morphological
// engine that can report (base form, category) pairs can be plugged in.
package morph

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/txus/jjigae/pkg/wordset"
)

// Category is the grammatical category of a morpheme, reduced to what the
// extractor cares about.
type Category int

const (
	Other Category = iota
	Noun
	Adjective
	Verb
)

func (c Category) String() string {
	switch c {
	case Noun:
		return "Noun"
	case Adjective:
		return "Adjective"
	case Verb:
		return "Verb"
	default:
		return "Other"
	}
}

// Content reports whether words of this category are kept by the extractor.
func (c Category) Content() bool {
	return c == Noun || c == Adjective || c == Verb
}

// Morpheme is a single analyzed unit of text.
type Morpheme struct {
	Surface  string   // the text as it appears (e.g. "가진다")
	BaseForm string   // the dictionary form (e.g. "가지다")
	Category Category // reduced category
	Tag      string   // the analyzer's own part-of-speech label
}

// Analyzer segments text into morphemes with base forms and categories.
type Analyzer interface {
	Analyze(text string) ([]Morpheme, error)
}

// AnalyzerFunc adapts a plain function to the Analyzer interface.
type AnalyzerFunc func(text string) ([]Morpheme, error)

func (f AnalyzerFunc) Analyze(text string) ([]Morpheme, error) { return f(text) }

// Extractor reduces text to its set of content words.
type Extractor struct {
	analyzer Analyzer
}

// NewExtractor returns an Extractor backed by a.
func NewExtractor(a Analyzer) (*Extractor, error) {
	if a == nil {
		return nil, errors.New("morph: nil analyzer")
	}
	return &Extractor{analyzer: a}, nil
}

// ExtractWords returns the distinct NFC-normalized base forms of the nouns,
// adjectives and verbs in text. Empty text yields an empty set without
// consulting the analyzer. Analyzer errors are returned unchanged.
func (e *Extractor) ExtractWords(text string) (wordset.Set, error) {
	words := wordset.New()
	if strings.TrimSpace(text) == "" {
		return words, nil
	}

	morphemes, err := e.analyzer.Analyze(norm.NFC.String(text))
	if err != nil {
		return nil, err
	}

	for _, m := range morphemes {
		if !m.Category.Content() {
			continue
		}
		base := norm.NFC.String(strings.TrimSpace(m.BaseForm))
		if base == "" {
			continue
		}
		words.Add(base)
	}
	return words, nil
}
