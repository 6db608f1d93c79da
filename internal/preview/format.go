package preview

import (
	"fmt"
	"time"
)

// FormatFileSize renders a byte count in human readable form.
func FormatFileSize(sizeBytes int64) string {
	size := float64(sizeBytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", size)
}

// FormatDuration renders a second count as HH:MM:SS, or MM:SS under an
// hour. Non-positive durations render as "Unknown".
func FormatDuration(durationSeconds float64) string {
	if durationSeconds <= 0 {
		return "Unknown"
	}

	total := int(durationSeconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatResolution renders stream dimensions, or "Unknown" when the probe
// found none.
func FormatResolution(width, height int) string {
	if width <= 0 || height <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%dx%d", width, height)
}

// FormatTimestamp renders a file timestamp as a readable date.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("2006-01-02 15:04")
}
