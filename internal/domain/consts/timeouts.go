package consts

import "time"

// External command timeouts
const (
	PlayerLaunchTimeout = 30 * time.Second
	FFmpegCheckTimeout  = 1 * time.Second
	FFprobeTimeout      = 2 * time.Second
	ThumbnailTimeout    = 3 * time.Second
)

// Housekeeping
const (
	ThumbnailMaxAge = 24 * time.Hour
	InfoRowMaxAge   = 30 * 24 * time.Hour
	WatchDebounce   = 500 * time.Millisecond
)

// Scan progress reporting
const (
	ScanProgressInterval = 200 * time.Millisecond
)
