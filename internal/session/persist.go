package session

import (
	"errors"
	"os"
	"sort"

	"vidpick/internal/domain/consts"
	"vidpick/internal/file"
	"vidpick/internal/models"
	"vidpick/internal/utils/logging"
	"vidpick/internal/validation"
)

// Save writes the current session snapshot to the configured state path.
// Persistence is best-effort: failures are logged and reported on the
// event feed but never returned, a full disk should not break playback.
func (s *Store) Save() {
	if s.statePath == "" {
		return
	}

	s.mu.RLock()
	if s.folder == "" {
		s.mu.RUnlock()
		logging.D(1, "no folder scanned, nothing to save")
		return
	}
	snap := s.snapshotLocked()
	s.mu.RUnlock()

	if err := file.WriteJSONAtomic(s.statePath, snap, consts.PermsStateFile); err != nil {
		logging.E("Failed to save session state: %v", err)
		s.emit(models.Event{Kind: models.EventStateSaveFailed, Err: err})
		return
	}

	logging.D(1, "saved session state to %s", s.statePath)
	s.emit(models.Event{Kind: models.EventStateSaved, Path: s.statePath})
}

func (s *Store) snapshotLocked() *models.Snapshot {
	played := make([]string, 0, len(s.played))
	for p := range s.played {
		played = append(played, p)
	}
	// Map order is random, sort for stable files and sane diffs.
	sort.Strings(played)

	return &models.Snapshot{
		Version:       consts.SnapshotVersion,
		CurrentFolder: s.folder,
		PlayedVideos:  played,
		RecentVideos:  append([]string{}, s.recent...),
		VideoFiles:    append([]string{}, s.videos...),
	}
}

// Load restores a previously saved session snapshot. It returns true only
// when a snapshot was read, validated, and applied. On any failure the
// session is left exactly as it was.
//
// Stored paths are untrusted, the state file may have been edited. A
// folder containing a parent directory reference rejects the whole load,
// while individual list entries that fail validation are dropped with a
// warning so one bad entry does not torch the rest of the session.
func (s *Store) Load() bool {
	if s.statePath == "" {
		return false
	}

	var snap models.Snapshot
	if err := file.ReadJSON(s.statePath, &snap); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.D(1, "no saved session at %s", s.statePath)
		} else {
			logging.W("Could not read saved session: %v", err)
		}
		return false
	}

	if snap.CurrentFolder == "" {
		logging.D(1, "saved session has no folder, ignoring")
		return false
	}
	if validation.HasTraversal(snap.CurrentFolder) {
		logging.W("Rejecting saved folder %q: parent directory reference", snap.CurrentFolder)
		return false
	}
	folder := validation.CanonicalAbs(snap.CurrentFolder)

	videos := make([]string, 0, len(snap.VideoFiles))
	for _, raw := range snap.VideoFiles {
		if p, ok := keepSavedPath(folder, raw); ok {
			videos = append(videos, p)
		}
	}

	played := make(map[string]struct{}, len(snap.PlayedVideos))
	for _, raw := range snap.PlayedVideos {
		if p, ok := keepSavedPath(folder, raw); ok {
			played[p] = struct{}{}
		}
	}

	// The recent list additionally dedupes and re-truncates, older state
	// files may predate those rules.
	recent := make([]string, 0, s.maxRecent)
	seen := make(map[string]struct{}, s.maxRecent)
	for _, raw := range snap.RecentVideos {
		p, ok := keepSavedPath(folder, raw)
		if !ok {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		recent = append(recent, p)
		if len(recent) == s.maxRecent {
			break
		}
	}

	s.mu.Lock()
	s.folder = folder
	s.videos = videos
	s.played = played
	s.recent = recent
	s.mu.Unlock()

	logging.I("Restored session: %d videos in %s, %d played", len(videos), folder, len(played))
	s.emit(models.Event{Kind: models.EventStateLoaded, Path: folder, Count: len(videos)})
	return true
}

// keepSavedPath validates one stored list entry against the restored
// folder, returning its canonical form when acceptable.
func keepSavedPath(folder, raw string) (string, bool) {
	if validation.HasTraversal(raw) {
		logging.W("Dropping saved path %q: parent directory reference", raw)
		return "", false
	}
	p := validation.CanonicalAbs(raw)
	if !validation.IsSubpath(folder, p) {
		logging.W("Dropping saved path %q: outside %q", raw, folder)
		return "", false
	}
	return p, true
}

// ClearSaved deletes the saved snapshot file. Removal is best-effort and a
// missing file counts as already clear. In-memory state is untouched.
func (s *Store) ClearSaved() {
	if s.statePath == "" {
		return
	}

	if err := os.Remove(s.statePath); err != nil && !os.IsNotExist(err) {
		logging.E("Failed to remove saved session: %v", err)
		return
	}

	logging.D(1, "cleared saved session at %s", s.statePath)
	s.emit(models.Event{Kind: models.EventStateCleared, Path: s.statePath})
}
