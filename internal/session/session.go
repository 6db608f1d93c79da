// Package session implements the random picking session: which videos are
// known, which have been played this rotation, and what was played recently.
package session

import (
	"sync"
	"time"

	"vidpick/internal/domain/consts"
	"vidpick/internal/models"
	"vidpick/internal/utils/logging"
	"vidpick/internal/validation"
)

const eventBuffer = 16

// Config adjusts a Store. Zero values fall back to package defaults.
type Config struct {
	// StatePath is where the session snapshot is saved and loaded. Empty
	// disables persistence entirely.
	StatePath string

	// MaxRecent caps the recently played list.
	MaxRecent int

	// Extensions overrides which files count as videos. Entries are
	// matched case-insensitively against the file extension.
	Extensions []string
}

// Store tracks one picking session. All methods are safe for concurrent
// use.
type Store struct {
	mu     sync.RWMutex
	folder string   // canonical absolute scan root, "" before the first scan
	videos []string // discovery order
	played map[string]struct{}
	recent []string // most recent first

	maxRecent int
	exts      map[string]struct{} // immutable after construction
	statePath string
	events    chan models.Event
}

// NewStore returns an empty session.
func NewStore(cfg Config) *Store {
	maxRecent := cfg.MaxRecent
	if maxRecent <= 0 {
		maxRecent = consts.DefaultMaxRecent
	}

	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = consts.DefaultVideoExts
	}

	return &Store{
		played:    make(map[string]struct{}),
		maxRecent: maxRecent,
		exts:      validation.NormalizeExts(exts),
		statePath: cfg.StatePath,
		events:    make(chan models.Event, eventBuffer),
	}
}

// Events exposes the session's event feed. Delivery is best-effort, a
// subscriber that falls behind loses events rather than blocking mutators.
func (s *Store) Events() <-chan models.Event {
	return s.events
}

func (s *Store) emit(ev models.Event) {
	ev.Time = time.Now()
	select {
	case s.events <- ev:
	default:
		logging.D(2, "event feed full, dropping %s event", ev.Kind)
	}
}

// Folder returns the canonical root of the current session, or "" when
// nothing has been scanned or restored yet.
func (s *Store) Folder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folder
}

// Videos returns a copy of the known video list in discovery order.
func (s *Store) Videos() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.videos...)
}

// Progress reports the played count against the total. Before any scan it
// is simply 0 of 0.
func (s *Store) Progress() models.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progressLocked()
}

func (s *Store) progressLocked() models.Progress {
	return models.Progress{Played: len(s.played), Total: len(s.videos)}
}

// Recent returns up to limit recently played videos, most recent first. A
// non-positive limit returns the whole list. The result is a copy, later
// session changes do not show through it.
func (s *Store) Recent(limit int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.recent)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]string(nil), s.recent[:n]...)
}
