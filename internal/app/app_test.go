package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/txus/jjigae/internal/config"
	"github.com/txus/jjigae/pkg/morph"
	"github.com/txus/jjigae/pkg/vocab"
	"github.com/txus/jjigae/pkg/vocab/vocabtest"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.csv")
	if err := os.WriteFile(path, []byte(vocabtest.CSV()), 0o644); err != nil {
		t.Fatal(err)
	}
	return &config.Config{
		Vocab: config.VocabConfig{
			Path:                 path,
			MaxVocab:             3500,
			ExtractMinDifficulty: "A",
			StudyMinDifficulty:   "B",
		},
		Analyzer:   config.AnalyzerConfig{TagSet: "ipa"},
		Collection: config.CollectionConfig{Path: filepath.Join(dir, "collection.db"), Deck: "Default", Workers: 2, BatchSize: 10},
		Log:        config.LogConfig{Level: "info", Format: "text"},
	}
}

func TestNew(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Store.Len() != vocabtest.Ranked+2 {
		t.Errorf("store has %d terms", a.Store.Len())
	}
	if got := a.ExtractOptions(); got.MaxVocab != 3500 || got.MinDifficulty != vocab.DifficultyA {
		t.Errorf("ExtractOptions = %+v", got)
	}
	if got := a.StudyOptions(); got.MinDifficulty != vocab.DifficultyB {
		t.Errorf("StudyOptions = %+v", got)
	}
}

func TestNewFailsOnMissingVocabulary(t *testing.T) {
	cfg := testConfig(t)
	cfg.Vocab.Path = filepath.Join(t.TempDir(), "missing.csv")

	_, err := New(cfg, nil)
	if !errors.Is(err, vocab.ErrLoad) {
		t.Fatalf("expected vocabulary load error, got %v", err)
	}
}

func TestNewFailsOnBadAnalyzer(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analyzer.TagSet = "mecab-ko"
	cfg.Analyzer.DictPath = filepath.Join(t.TempDir(), "missing.dict")

	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected analyzer error")
	}
}

func TestAddToCollection(t *testing.T) {
	cfg := testConfig(t)
	analyzer := morph.AnalyzerFunc(func(string) ([]morph.Morpheme, error) {
		return []morph.Morpheme{
			{Surface: "과학", BaseForm: "과학", Category: morph.Noun},
			{Surface: "발전", BaseForm: "발전", Category: morph.Noun},
			{Surface: "사람", BaseForm: "사람", Category: morph.Noun},
		}, nil
	})
	a, err := NewWithAnalyzer(cfg, nil, analyzer)
	if err != nil {
		t.Fatalf("NewWithAnalyzer: %v", err)
	}

	c, err := a.OpenCollection()
	if err != nil {
		t.Fatalf("OpenCollection: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	unknown, err := a.Engine.UnknownWords(ctx, "과학 발전 사람", c, a.StudyOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(unknown) != 2 {
		t.Fatalf("unknown = %v", unknown)
	}

	b := a.NewBuilder(c)
	if b.Workers != 2 || b.BatchSize != 10 {
		t.Errorf("builder not configured: workers=%d batch=%d", b.Workers, b.BatchSize)
	}
	n, err := b.AddTerms(ctx, unknown, cfg.Collection.Deck, nil)
	if err != nil || n != 2 {
		t.Fatalf("AddTerms = %d, %v", n, err)
	}

	// Freshly added words are new, so they are still unknown.
	again, err := a.Engine.UnknownWords(ctx, "과학 발전 사람", c, a.StudyOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 2 {
		t.Errorf("unknown after add = %v", again)
	}
}
