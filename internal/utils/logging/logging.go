// Package logging wraps zerolog behind the small helpers used across vidpick.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"vidpick/internal/domain/consts"

	"github.com/rs/zerolog"
)

var (
	mu         sync.Mutex
	debugLevel int
	logFile    *os.File

	logger = zerolog.New(consoleWriter()).With().Timestamp().Logger()
)

// Setup configures the global logger.
//
// A debug level above zero enables debug output, higher values enable the
// chattier call sites. When logPath is non-empty, entries are mirrored into
// that file as JSON lines.
func Setup(level int, pretty bool, logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	debugLevel = level

	writers := make([]io.Writer, 0, 2)
	if pretty {
		writers = append(writers, consoleWriter())
	} else {
		writers = append(writers, os.Stderr)
	}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, consts.PermsLogFile)
		if err != nil {
			return err
		}
		logFile = f
		writers = append(writers, f)
	}

	lvl := zerolog.InfoLevel
	if level > 0 {
		lvl = zerolog.DebugLevel
	}

	logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(lvl)
	return nil
}

// Close releases the log file, if one was opened.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// L returns the configured logger for structured call sites.
func L() *zerolog.Logger {
	return &logger
}

func consoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
}

// I logs at info level.
func I(format string, args ...any) {
	logger.Info().Msgf(format, args...)
}

// D logs at debug level. The message only prints when the configured debug
// level meets or exceeds l.
func D(l int, format string, args ...any) {
	if debugLevel < l {
		return
	}
	logger.Debug().Msgf(format, args...)
}

// S logs a success at info level, gated like D so verbose success chatter
// can sit above level zero.
func S(l int, format string, args ...any) {
	if l > 0 && debugLevel < l {
		return
	}
	logger.Info().Str("status", "ok").Msgf(format, args...)
}

// W logs at warn level.
func W(format string, args ...any) {
	logger.Warn().Msgf(format, args...)
}

// E logs at error level.
func E(format string, args ...any) {
	logger.Error().Msgf(format, args...)
}
