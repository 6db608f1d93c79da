package preview

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vidpick/internal/domain/consts"
	"vidpick/internal/utils/logging"
)

// Thumbnail returns a preview frame for video, generating one with ffmpeg
// if no cached frame exists. The second return is false when generation
// was not possible (ffmpeg missing, timeout, unreadable input).
func (s *Service) Thumbnail(ctx context.Context, video string) (string, bool) {
	if s.thumbsDir == "" || !s.CheckFFmpeg(ctx) {
		return "", false
	}

	thumbPath := s.thumbPath(video)
	if info, err := os.Stat(thumbPath); err == nil && info.Size() > 0 {
		return thumbPath, true
	}

	if err := os.MkdirAll(s.thumbsDir, consts.PermsThumbsDir); err != nil {
		logging.W("Cannot create thumbnail directory %q: %v", s.thumbsDir, err)
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, consts.ThumbnailTimeout)
	defer cancel()

	// Seek before the input for speed, a fixed offset skips most intros
	// without needing the duration first.
	seek := fmt.Sprintf("00:00:%02d", consts.ThumbnailSeekSecs)
	scale := fmt.Sprintf("scale=%d:%d", consts.ThumbnailWidth, consts.ThumbnailHeight)

	_, err := s.runCmd(ctx, "ffmpeg",
		"-ss", seek,
		"-i", video,
		"-vframes", "1",
		"-q:v", fmt.Sprintf("%d", consts.ThumbnailQuality),
		"-vf", scale,
		"-y",
		thumbPath,
	)
	if err != nil {
		logging.W("Thumbnail generation failed for %q: %v", video, err)
		removePartialThumb(thumbPath)
		return "", false
	}

	info, err := os.Stat(thumbPath)
	if err != nil || info.Size() == 0 {
		logging.W("Thumbnail file not created or empty for %q", video)
		removePartialThumb(thumbPath)
		return "", false
	}
	return thumbPath, true
}

// thumbPath names the cached frame for a video. The name keeps the video's
// stem for debuggability plus a hash of the full path, two videos with the
// same filename in different folders must not share a frame.
func (s *Service) thumbPath(video string) string {
	stem := strings.TrimSuffix(filepath.Base(video), filepath.Ext(video))
	sum := sha256.Sum256([]byte(video))
	return filepath.Join(s.thumbsDir, fmt.Sprintf("thumb_%s_%s_%dx%d.jpg",
		stem, hex.EncodeToString(sum[:6]), consts.ThumbnailWidth, consts.ThumbnailHeight))
}

func removePartialThumb(path string) {
	if info, err := os.Stat(path); err == nil && info.Size() == 0 {
		if err := os.Remove(path); err != nil {
			logging.W("Failed to clean up partial thumbnail: %v", err)
		}
	}
}

// cleanupOldThumbnails deletes generated frames past their max age.
func (s *Service) cleanupOldThumbnails() int {
	if s.thumbsDir == "" {
		return 0
	}

	entries, err := os.ReadDir(s.thumbsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.W("Failed to read thumbnail directory: %v", err)
		}
		return 0
	}

	cutoff := time.Now().Add(-consts.ThumbnailMaxAge)
	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "thumb_") || !strings.HasSuffix(name, ".jpg") {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.thumbsDir, name)); err != nil {
			logging.W("Failed to remove old thumbnail %q: %v", name, err)
			continue
		}
		removed++
	}
	return removed
}
