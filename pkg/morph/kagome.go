package morph

import (
	"fmt"
	"strings"

	ko "github.com/ikawaha/kagome-dict-ko"
	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// TagSet interprets the feature columns of a kagome dictionary.
type TagSet struct {
	Name string
	// Classify returns the base form and category of one token.
	Classify func(surface string, features []string) (base string, cat Category)
	// Join, if set, folds cur into prev when their tokens touch. It reports
	// false to keep them apart.
	Join func(prev, cur Morpheme) (Morpheme, bool)
}

// IPA reads the IPA dictionary bundled with kagome (Japanese).
//
// Features: 0 POS, 1-3 sub-POS, 4 conjugation type, 5 conjugation form,
// 6 base form, 7 reading, 8 pronunciation.
var IPA = TagSet{
	Name: "ipa",
	Classify: func(surface string, features []string) (string, Category) {
		base := surface
		if len(features) > 6 && features[6] != "*" {
			base = features[6]
		}
		if len(features) == 0 {
			return base, Other
		}
		sub := ""
		if len(features) > 1 {
			sub = features[1]
		}
		if sub == "数" || sub == "非自立" {
			return base, Other
		}
		switch features[0] {
		case "名詞":
			return base, Noun
		case "形容詞":
			return base, Adjective
		case "動詞":
			return base, Verb
		}
		return base, Other
	},
}

// MecabKo reads mecab-ko-dic, embedded or built for kagome (Korean).
//
// Features: 0 POS (joined with "+" for inflected forms), 1 semantic class,
// 2 final consonant, 3 reading, 4 type, 5 first POS, 6 last POS, 7 expression.
var MecabKo = TagSet{
	Name: "mecab-ko",
	Classify: func(surface string, features []string) (string, Category) {
		if len(features) == 0 {
			return surface, Other
		}
		pos, _, _ := strings.Cut(features[0], "+")
		stem := surface
		if len(features) > 7 && features[4] == "Inflect" && features[7] != "*" {
			// 가지/VV/*+ㄴ다/EC/*
			first, _, _ := strings.Cut(features[7], "+")
			if parts := strings.Split(first, "/"); len(parts) >= 2 {
				stem, pos = parts[0], parts[1]
			}
		}
		switch pos {
		case "NNG", "NNP", "NNB", "NP":
			return stem, Noun
		case "VA", "XSA":
			return stem + "다", Adjective
		case "VV", "XSV":
			return stem + "다", Verb
		}
		return stem, Other
	},
	// 자유/NNG + 롭/XSA becomes 자유롭다. Verb suffixes stay apart from their
	// noun, so 참여하며 yields 참여 and 하다.
	Join: func(prev, cur Morpheme) (Morpheme, bool) {
		if head, _, _ := strings.Cut(cur.Tag, "+"); head != "XSA" {
			return Morpheme{}, false
		}
		if prev.Tag != "NNG" && prev.Tag != "XR" {
			return Morpheme{}, false
		}
		return Morpheme{
			Surface:  prev.Surface + cur.Surface,
			BaseForm: prev.BaseForm + cur.BaseForm,
			Category: Adjective,
			Tag:      prev.Tag + "+" + cur.Tag,
		}, true
	},
}

// TagSetByName returns the tag set called name.
func TagSetByName(name string) (TagSet, error) {
	switch name {
	case IPA.Name:
		return IPA, nil
	case MecabKo.Name:
		return MecabKo, nil
	}
	return TagSet{}, fmt.Errorf("unknown tag set %q", name)
}

// KagomeAnalyzer is an Analyzer backed by the kagome tokenizer.
type KagomeAnalyzer struct {
	t    *tokenizer.Tokenizer
	tags TagSet
}

// NewKagomeAnalyzer creates an analyzer over d whose features are read with tags.
func NewKagomeAnalyzer(d *dict.Dict, tags TagSet) (*KagomeAnalyzer, error) {
	if d == nil {
		return nil, fmt.Errorf("nil dictionary")
	}
	if tags.Classify == nil {
		return nil, fmt.Errorf("tag set %q has no classifier", tags.Name)
	}
	t, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &KagomeAnalyzer{t: t, tags: tags}, nil
}

// NewIPAAnalyzer creates an analyzer over the embedded IPA dictionary.
func NewIPAAnalyzer() (*KagomeAnalyzer, error) {
	return NewKagomeAnalyzer(ipa.Dict(), IPA)
}

// NewKoreanAnalyzer creates an analyzer over the embedded mecab-ko-dic.
func NewKoreanAnalyzer() (*KagomeAnalyzer, error) {
	return NewKagomeAnalyzer(ko.Dict(), MecabKo)
}

// OpenAnalyzer builds an analyzer for tagSet. An empty dictPath selects the
// dictionary embedded for that tag set.
func OpenAnalyzer(dictPath, tagSet string) (*KagomeAnalyzer, error) {
	tags, err := TagSetByName(tagSet)
	if err != nil {
		return nil, err
	}
	if dictPath == "" {
		if tags.Name == MecabKo.Name {
			return NewKoreanAnalyzer()
		}
		return NewIPAAnalyzer()
	}
	d, err := dict.LoadDictFile(dictPath)
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", dictPath, err)
	}
	return NewKagomeAnalyzer(d, tags)
}

// Analyze breaks text into morphemes with base forms and categories.
func (a *KagomeAnalyzer) Analyze(text string) ([]Morpheme, error) {
	tokens := a.t.Tokenize(text)
	result := make([]Morpheme, 0, len(tokens))

	// end is where the last kept token stops.
	end := -1
	for _, token := range tokens {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(token.Surface) == "" {
			continue
		}

		features := token.Features()
		base, cat := a.tags.Classify(token.Surface, features)

		tag := ""
		if len(features) > 0 {
			tag = features[0]
		}
		m := Morpheme{
			Surface:  token.Surface,
			BaseForm: base,
			Category: cat,
			Tag:      tag,
		}

		touching := token.Start == end
		end = token.End
		if n := len(result); n > 0 && touching && a.tags.Join != nil {
			if joined, ok := a.tags.Join(result[n-1], m); ok {
				result[n-1] = joined
				continue
			}
		}
		result = append(result, m)
	}

	return result, nil
}
