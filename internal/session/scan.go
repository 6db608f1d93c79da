package session

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"vidpick/internal/domain/consts"
	"vidpick/internal/models"
	"vidpick/internal/utils/logging"
	"vidpick/internal/validation"
)

// ScanOptions adjust a single folder scan.
type ScanOptions struct {
	// KeepSession preserves played history and the recent list across the
	// scan. A plain rescan starts the rotation over.
	KeepSession bool

	// Flat limits the scan to the folder's top level instead of walking
	// subdirectories.
	Flat bool

	// Progress, when set, receives the running file count at a throttled
	// interval while the walk runs, and once more with the final total.
	Progress func(found int)
}

// Scan walks folder for video files and replaces the session's video list
// with the result. The walk runs outside the session lock, readers see
// either the old list or the new one, never a half-built scan. A canceled
// ctx aborts the walk and leaves the session unchanged.
func (s *Store) Scan(ctx context.Context, folder string, opts ScanOptions) (int, error) {
	if err := validation.ValidateDirectory(folder); err != nil {
		return 0, err
	}
	root := validation.CanonicalAbs(folder)

	found, err := s.collectVideos(ctx, root, opts)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.folder = root
	s.videos = found
	if !opts.KeepSession {
		s.played = make(map[string]struct{}, len(found))
		s.recent = nil
	}
	s.mu.Unlock()

	logging.I("Found %d videos in %s", len(found), root)
	s.emit(models.Event{Kind: models.EventScanned, Path: root, Count: len(found)})
	return len(found), nil
}

func (s *Store) collectVideos(ctx context.Context, root string, opts ScanOptions) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		found      []string
		lastReport time.Time
	)

	consider := func(path string) {
		if !validation.HasExt(path, s.exts) {
			return
		}

		// Stat follows symlinks, a link into another folder still counts.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return
		}
		found = append(found, path)

		if opts.Progress != nil && time.Since(lastReport) >= consts.ScanProgressInterval {
			lastReport = time.Now()
			opts.Progress(len(found))
		}
	}

	if opts.Flat {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", root, err)
		}
		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if e.IsDir() {
				continue
			}
			consider(filepath.Join(root, e.Name()))
		}
	} else {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if walkErr != nil {
				// Unreadable subtrees are skipped, not fatal.
				logging.D(1, "skipping %q: %v", path, walkErr)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			consider(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if opts.Progress != nil {
		opts.Progress(len(found))
	}
	return found, nil
}
