// Package preview extracts media details and thumbnails for picked videos.
//
// Everything here is best-effort: a missing ffmpeg install, a truncated
// file, or a slow probe degrades to stat-only info rather than failing the
// pick.
package preview

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"sync"
	"time"

	"vidpick/internal/domain/consts"
	"vidpick/internal/models"
	"vidpick/internal/repo"
	"vidpick/internal/utils/logging"
)

// Service probes videos and generates preview thumbnails, caching results
// in memory and, when a store is attached, in the cache database.
type Service struct {
	thumbsDir string
	store     *repo.MediaInfoStore
	runCmd    func(ctx context.Context, name string, args ...string) ([]byte, error)

	mu     sync.Mutex
	memo   map[string]models.MediaInfo
	order  []string // memo insertion order, oldest first
	toolOK map[string]bool
}

// New returns a preview service writing thumbnails under thumbsDir. The
// store may be nil, which disables the persistent cache tier.
func New(thumbsDir string, store *repo.MediaInfoStore) *Service {
	return &Service{
		thumbsDir: thumbsDir,
		store:     store,
		runCmd:    runCommand,
		memo:      make(map[string]models.MediaInfo),
		toolOK:    make(map[string]bool),
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	err := cmd.Run()
	return stdout.Bytes(), err
}

// CheckFFmpeg reports whether ffmpeg is runnable. The answer is cached,
// shelling out per call would dwarf the work being checked for.
func (s *Service) CheckFFmpeg(ctx context.Context) bool {
	return s.checkTool(ctx, "ffmpeg")
}

// CheckFFprobe reports whether ffprobe is runnable, cached like CheckFFmpeg.
func (s *Service) CheckFFprobe(ctx context.Context) bool {
	return s.checkTool(ctx, "ffprobe")
}

func (s *Service) checkTool(ctx context.Context, name string) bool {
	s.mu.Lock()
	ok, checked := s.toolOK[name]
	s.mu.Unlock()
	if checked {
		return ok
	}

	ctx, cancel := context.WithTimeout(ctx, consts.FFmpegCheckTimeout)
	defer cancel()

	_, err := s.runCmd(ctx, name, "-version")
	ok = err == nil
	if !ok {
		logging.D(1, "%s not available: %v", name, err)
	}

	s.mu.Lock()
	s.toolOK[name] = ok
	s.mu.Unlock()
	return ok
}

// Probe returns media info for path. Results come from the memory cache,
// then the database cache (validated against the file's current size and
// mtime), then a fresh ffprobe run. Probing never fails outright, at
// minimum the returned info carries the path and whatever stat reported.
func (s *Service) Probe(ctx context.Context, path string) models.MediaInfo {
	s.mu.Lock()
	if cached, ok := s.memo[path]; ok {
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	info := models.MediaInfo{Path: path}

	stat, err := os.Stat(path)
	if err != nil {
		logging.W("Failed to stat %q: %v", path, err)
		return info
	}
	info.Size = stat.Size()
	info.ModTime = stat.ModTime()

	if s.store != nil {
		if row, found, err := s.store.GetInfo(path); err != nil {
			logging.W("Media info cache read failed for %q: %v", path, err)
		} else if found && !row.Stale(info.Size, info.ModTime) {
			s.remember(path, *row)
			return *row
		}
	}

	if s.CheckFFprobe(ctx) && s.runProbe(ctx, path, &info) {
		if s.store != nil {
			if err := s.store.SaveInfo(&info); err != nil {
				logging.W("Media info cache write failed for %q: %v", path, err)
			}
		}
	}

	s.remember(path, info)
	return info
}

// Forget drops any cached info for path, forcing the next Probe to hit
// the file again. Used when a watcher reports the file changed.
func (s *Service) Forget(path string) {
	s.mu.Lock()
	if _, ok := s.memo[path]; ok {
		delete(s.memo, path)
		for i, p := range s.order {
			if p == path {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.DeleteInfo(path); err != nil {
			logging.W("Media info cache delete failed for %q: %v", path, err)
		}
	}
}

// remember stores info in the memory tier, evicting the oldest entries
// once the ceiling is crossed.
func (s *Service) remember(path string, info models.MediaInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.memo[path]; !exists {
		s.order = append(s.order, path)
	}
	s.memo[path] = info

	if len(s.memo) <= consts.InfoCacheMax {
		return
	}
	drop := len(s.order) - consts.InfoCacheEvictTo
	for _, old := range s.order[:drop] {
		delete(s.memo, old)
	}
	s.order = append([]string(nil), s.order[drop:]...)
}

// Sweep removes thumbnails older than the max age and prunes long-unseen
// rows from the cache database. Meant to run in the background at startup.
func (s *Service) Sweep() (thumbs int, rows int64) {
	thumbs = s.cleanupOldThumbnails()

	if s.store != nil {
		var err error
		rows, err = s.store.PruneOlderThan(time.Now().Add(-consts.InfoRowMaxAge))
		if err != nil {
			logging.W("Media info cache prune failed: %v", err)
		}
	}

	if thumbs > 0 || rows > 0 {
		logging.D(1, "cache sweep removed %d thumbnails, %d stale rows", thumbs, rows)
	}
	return thumbs, rows
}
