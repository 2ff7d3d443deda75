package content

import (
	"sync/atomic"

	"github.com/Zachkp/portfolio/internal/logging"
	"go.uber.org/zap"
)

// Store serves the current portfolio to concurrent readers.
type Store struct {
	current atomic.Pointer[Portfolio]
	path    string
}

// NewStore returns a store seeded with p. path is the override file Reload
// reads; it may be empty when content is built in.
func NewStore(p *Portfolio, path string) *Store {
	s := &Store{path: path}
	s.current.Store(p)
	return s
}

// Open builds a store from path, or from the defaults when path is empty.
func Open(path string) (*Store, error) {
	if path == "" {
		return NewStore(Default(), ""), nil
	}
	p, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewStore(p, path), nil
}

// Current returns the portfolio in effect. Callers must not mutate it.
func (s *Store) Current() *Portfolio {
	return s.current.Load()
}

// Path is the override file backing the store, or "".
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the override file. On failure the previous content stays
// in effect and the error is returned.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	p, err := LoadFile(s.path)
	if err != nil {
		logging.Warn("Content reload rejected, keeping previous content",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return err
	}
	s.current.Store(p)
	logging.Info("Content reloaded",
		zap.String("path", s.path),
		zap.Int("sections", len(p.Sections)),
		zap.Int("projects", len(p.Projects)),
	)
	return nil
}
