package consts

// Program identity and on-disk layout.
const (
	AppName = "vidpick"

	AppDirName     = ".vidpick"
	PortableMarker = ".portable"

	StateFilename   = "state.json"
	CacheDBFilename = "cache.db"
	LogFilename     = "vidpick.log"
	ThumbsDirName   = "thumbs"
)

// Session defaults.
const (
	DefaultMaxRecent = 10

	// Serialized session snapshots carry this version tag. Older files
	// without one still load.
	SnapshotVersion = 1
)

// DefaultVideoExts are the extensions treated as video files when no
// override is configured. Matching is case-insensitive.
var DefaultVideoExts = []string{".mp4", ".mkv", ".avi", ".mov", ".webm"}

// Media info cache bounds.
const (
	// InfoCacheMax is the in-memory entry ceiling. Once crossed, the
	// oldest entries are dropped until InfoCacheEvictTo remain.
	InfoCacheMax     = 50
	InfoCacheEvictTo = 25
)

// Thumbnail generation.
const (
	ThumbnailSeekSecs = 20
	ThumbnailQuality  = 2
	ThumbnailWidth    = 320
	ThumbnailHeight   = 240
)
