package session

import (
	"math/rand"

	"vidpick/internal/models"
	"vidpick/internal/utils/logging"
	"vidpick/internal/validation"
)

// Pick returns a uniformly random video that has not been played this
// rotation. When every known video has been played, the rotation resets
// first (played history and the recent list are wiped) so picking never
// dead-ends. The second return is false only when no videos are known.
//
// Pick does not mark the result as played, callers confirm playback with
// MarkPlayed or Skip.
func (s *Store) Pick() (string, bool) {
	var rotated bool

	s.mu.Lock()
	if len(s.videos) == 0 {
		s.mu.Unlock()
		return "", false
	}

	unplayed := s.unplayedLocked()
	if len(unplayed) == 0 {
		s.played = make(map[string]struct{}, len(s.videos))
		s.recent = nil
		unplayed = append([]string(nil), s.videos...)
		rotated = true
	}
	choice := unplayed[rand.Intn(len(unplayed))]
	total := len(s.videos)
	s.mu.Unlock()

	if rotated {
		logging.I("All %d videos played, starting a fresh rotation", total)
		s.emit(models.Event{Kind: models.EventRotationReset})
	}
	return choice, true
}

func (s *Store) unplayedLocked() []string {
	out := make([]string, 0, len(s.videos))
	for _, v := range s.videos {
		if _, ok := s.played[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// MarkPlayed records path as played this rotation and moves it to the
// front of the recent list. Marking an already played video again only
// refreshes its recent position.
func (s *Store) MarkPlayed(path string) models.Progress {
	p := validation.CanonicalAbs(path)

	s.mu.Lock()
	s.played[p] = struct{}{}
	s.recent = promoteRecent(s.recent, p, s.maxRecent)
	prog := s.progressLocked()
	s.mu.Unlock()

	s.emit(models.Event{Kind: models.EventPlayed, Path: p})
	return prog
}

// Skip records path as played without touching the recent list, so a
// skipped video neither resurfaces this rotation nor shows up as watched.
func (s *Store) Skip(path string) models.Progress {
	p := validation.CanonicalAbs(path)

	s.mu.Lock()
	s.played[p] = struct{}{}
	prog := s.progressLocked()
	s.mu.Unlock()

	s.emit(models.Event{Kind: models.EventSkipped, Path: p})
	return prog
}

// Reset wipes played history and the recent list but keeps the video list,
// putting every known video back into the rotation.
func (s *Store) Reset() models.Progress {
	s.mu.Lock()
	s.played = make(map[string]struct{}, len(s.videos))
	s.recent = nil
	prog := s.progressLocked()
	s.mu.Unlock()

	s.emit(models.Event{Kind: models.EventRotationReset})
	return prog
}

// promoteRecent moves path to the front of list, dropping any earlier
// occurrence and truncating to max entries.
func promoteRecent(list []string, path string, max int) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, path)
	for _, p := range list {
		if p != path {
			out = append(out, p)
		}
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}
