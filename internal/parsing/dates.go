// Package parsing turns loosely formatted ffprobe output into usable values.
package parsing

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseCreationTime parses the creation_time tag ffprobe reports for a
// container. Encoders write it in wildly different shapes ("2023-01-02
// 15:04:05", RFC3339 with or without fractional seconds, word dates from
// editing tools), dateparse covers them all. Returns the zero time when
// nothing parses.
func ParseCreationTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseDurationSecs parses ffprobe's format.duration field, a decimal
// second count serialized as a string. Returns 0 when absent or malformed.
func ParseDurationSecs(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || secs < 0 {
		return 0
	}
	return secs
}
