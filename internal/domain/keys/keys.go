// Package keys holds the Viper keys used for terminal flags and
// internal settings.
package keys

// Terminal keys
const (
	Folder     string = "folder"
	Extensions string = "extensions"
	MaxRecent  string = "max-recent"
	KeepFlag   string = "keep-session"
	FlatFlag   string = "flat"
	LimitFlag  string = "limit"
	NoPlay     string = "no-play"
	SkipFlag   string = "skip"
	InfoFlag   string = "info"
	PlayFlag   string = "play"

	Persist  string = "persist"
	StateDir string = "state-dir"

	DebugLevel string = "debug"
	LogPretty  string = "pretty"
	ConfigFile string = "config-file"
)

// Internal settings
const (
	PlayTimeout string = "play-timeout"
)
