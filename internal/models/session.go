package models

// Snapshot is the serialized form of a picking session.
//
// Matches the on-disk state file layout, do not alter field names.
type Snapshot struct {
	Version       int      `json:"version,omitempty"`
	CurrentFolder string   `json:"current_folder"`
	PlayedVideos  []string `json:"played_videos"`
	RecentVideos  []string `json:"recent_videos"`
	VideoFiles    []string `json:"video_files"`
}

// Progress reports how far through the current rotation a session is.
type Progress struct {
	Played int
	Total  int
}

// Complete reports whether every known video has been played or skipped.
// An empty session counts as incomplete.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Played >= p.Total
}
