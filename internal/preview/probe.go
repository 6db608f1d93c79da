package preview

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"vidpick/internal/domain/consts"
	"vidpick/internal/models"
	"vidpick/internal/parsing"
)

// ffprobe's -print_format json layout, limited to the fields we read.
type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type ffprobeFormat struct {
	Duration string            `json:"duration"`
	Tags     map[string]string `json:"tags"`
}

// runProbe executes ffprobe against path and folds the interesting fields
// into info. A probe failure leaves info at its stat-only baseline.
func (s *Service) runProbe(ctx context.Context, path string, info *models.MediaInfo) bool {
	ctx, cancel := context.WithTimeout(ctx, consts.FFprobeTimeout)
	defer cancel()

	out, err := s.runCmd(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		return false
	}

	var probed ffprobeOutput
	if err := json.Unmarshal(out, &probed); err != nil {
		return false
	}

	for _, st := range probed.Streams {
		if st.CodecType != "video" {
			continue
		}
		info.Width = st.Width
		info.Height = st.Height
		info.VideoCodec = st.CodecName
		break
	}

	info.Duration = parsing.ParseDurationSecs(probed.Format.Duration)
	if raw, ok := tagValue(probed.Format.Tags, "creation_time"); ok {
		info.CreatedAt = parsing.ParseCreationTime(raw)
	}
	info.ProbedAt = time.Now()
	return true
}

// tagValue looks a tag up case-insensitively, muxers disagree on casing.
func tagValue(tags map[string]string, name string) (string, bool) {
	for k, v := range tags {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}
