// Package app wires configuration, logging, the reference vocabulary, the
// morphological analyzer and the learner's collection into the objects the
// commands use.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/txus/jjigae/internal/config"
	"github.com/txus/jjigae/pkg/db"
	"github.com/txus/jjigae/pkg/deck"
	"github.com/txus/jjigae/pkg/morph"
	"github.com/txus/jjigae/pkg/prestudy"
	"github.com/txus/jjigae/pkg/vocab"
)

// App holds the long-lived, read-only state shared by every request.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *vocab.Store
	Engine *prestudy.Engine
}

// New loads the reference vocabulary and builds the analyzer named by cfg.
// A vocabulary that fails to load is fatal.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	analyzer, err := morph.OpenAnalyzer(cfg.Analyzer.DictPath, cfg.Analyzer.TagSet)
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}
	return NewWithAnalyzer(cfg, logger, analyzer)
}

// NewWithAnalyzer is New with an explicit analyzer.
func NewWithAnalyzer(cfg *config.Config, logger *slog.Logger, analyzer morph.Analyzer) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	start := time.Now()
	store, err := vocab.LoadFile(cfg.Vocab.Path)
	if err != nil {
		return nil, err
	}
	logger.Info("vocabulary loaded",
		slog.String("path", cfg.Vocab.Path),
		slog.Int("terms", store.Len()),
		slog.Duration("took", time.Since(start)),
	)

	engine, err := prestudy.NewEngine(store, analyzer)
	if err != nil {
		return nil, err
	}
	engine.Logger = logger

	return &App{Config: cfg, Logger: logger, Store: store, Engine: engine}, nil
}

// ExtractOptions are the configured defaults for plain extraction.
func (a *App) ExtractOptions() prestudy.Options {
	return prestudy.Options{
		MaxVocab:      a.Config.Vocab.MaxVocab,
		MinDifficulty: vocab.Difficulty(a.Config.Vocab.ExtractMinDifficulty),
	}
}

// StudyOptions are the configured defaults for finding words to learn.
func (a *App) StudyOptions() prestudy.Options {
	return prestudy.Options{
		MaxVocab:      a.Config.Vocab.MaxVocab,
		MinDifficulty: vocab.Difficulty(a.Config.Vocab.StudyMinDifficulty),
	}
}

// OpenCollection opens the configured collection.
func (a *App) OpenCollection() (*db.Collection, error) {
	c, err := db.Open(a.Config.Collection.Path)
	if err != nil {
		return nil, err
	}
	a.Logger.Debug("collection opened", slog.String("path", a.Config.Collection.Path))
	return c, nil
}

// NewBuilder returns a deck builder for c using the configured concurrency.
func (a *App) NewBuilder(c *db.Collection) *deck.Builder {
	b := deck.NewBuilder(c)
	b.Workers = a.Config.Collection.Workers
	b.BatchSize = a.Config.Collection.BatchSize
	b.Logger = a.Logger
	return b
}
