package models

import "time"

// MediaInfo holds probed metadata for a single video file.
//
// Matches the order of the DB table, do not alter.
type MediaInfo struct {
	Path       string    `json:"path" db:"path"`
	Size       int64     `json:"size" db:"size"`
	ModTime    time.Time `json:"mod_time" db:"mod_time"`
	Duration   float64   `json:"duration_secs" db:"duration_secs"`
	Width      int       `json:"width" db:"width"`
	Height     int       `json:"height" db:"height"`
	VideoCodec string    `json:"video_codec" db:"video_codec"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	ProbedAt   time.Time `json:"probed_at" db:"probed_at"`
}

// HasStreamData reports whether the probe actually returned stream details,
// as opposed to stat-only fallback data.
func (m *MediaInfo) HasStreamData() bool {
	return m.Duration > 0 || (m.Width > 0 && m.Height > 0)
}

// Stale reports whether the file on disk no longer matches the cached
// size and modification time.
func (m *MediaInfo) Stale(size int64, modTime time.Time) bool {
	return m.Size != size || !m.ModTime.Equal(modTime)
}
