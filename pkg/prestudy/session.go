package prestudy

import (
	"context"
	"sync"

	"github.com/txus/jjigae/pkg/vocab"
	"github.com/txus/jjigae/pkg/wordset"
)

// Session is one text submission. The passage is analyzed and the study
// record queried at most once; changing Options afterwards only re-filters.
// Submit a new text by starting a new Session.
type Session struct {
	engine *Engine
	text   string
	record StudyRecord

	mu      sync.Mutex
	words   wordset.Set
	studied wordset.Set
}

// NewSession starts a session for text. record may be nil, in which case
// nothing counts as studied.
func (e *Engine) NewSession(text string, record StudyRecord) *Session {
	return &Session{engine: e, text: text, record: record}
}

// Words returns the content words of the session's text.
func (s *Session) Words() (wordset.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wordsLocked()
}

func (s *Session) wordsLocked() (wordset.Set, error) {
	if s.words != nil {
		return s.words, nil
	}
	words, err := s.engine.ExtractWords(s.text)
	if err != nil {
		return nil, err
	}
	s.words = words
	return words, nil
}

// Studied returns the words already studied according to the session's record.
func (s *Session) Studied(ctx context.Context) (wordset.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.studiedLocked(ctx)
}

func (s *Session) studiedLocked(ctx context.Context) (wordset.Set, error) {
	if s.studied != nil {
		return s.studied, nil
	}
	if s.record == nil {
		s.studied = wordset.New()
		return s.studied, nil
	}
	studied, err := WordsAlreadyStudied(ctx, s.record)
	if err != nil {
		return nil, err
	}
	s.studied = studied
	return studied, nil
}

// Extract is Engine.Extract over the session's text.
func (s *Session) Extract(opts Options) ([]vocab.Term, error) {
	words, err := s.Words()
	if err != nil {
		return nil, err
	}
	return s.engine.match(words, opts), nil
}

// UnknownWords is Engine.UnknownWords over the session's text and record.
func (s *Session) UnknownWords(ctx context.Context, opts Options) ([]vocab.Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := s.wordsLocked()
	if err != nil {
		return nil, err
	}
	studied, err := s.studiedLocked(ctx)
	if err != nil {
		return nil, err
	}

	unknown := subtract(s.engine.match(words, opts), studied)
	s.engine.logger().Debug("study gap",
		"words", words.Len(),
		"studied", studied.Len(),
		"unknown", len(unknown),
	)
	return unknown, nil
}
