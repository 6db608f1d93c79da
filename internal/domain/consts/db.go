package consts

// Tables
const (
	DBMediaInfo = "media_info"
)

// Media info
const (
	QInfoPath      = "path"
	QInfoSize      = "size"
	QInfoModTime   = "mod_time"
	QInfoDuration  = "duration_secs"
	QInfoWidth     = "width"
	QInfoHeight    = "height"
	QInfoVCodec    = "video_codec"
	QInfoCreatedAt = "created_at"
	QInfoProbedAt  = "probed_at"
)
