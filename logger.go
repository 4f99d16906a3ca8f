package lawsite

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the application logger. Format "json" writes one JSON
// object per line; anything else writes human-readable console output.
// When file is set, JSON lines are also appended to it with size-based rotation.
func NewLogger(level, format, file string) zerolog.Logger {
	var w io.Writer = os.Stderr
	if file != "" {
		w = zerolog.MultiLevelWriter(consoleOr(os.Stderr, format), &lumberjack.Logger{
			Filename:   file,
			MaxSize:    20, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
		return newLogger(w, level, "json")
	}
	return newLogger(w, level, format)
}

func newLogger(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(consoleOr(w, format)).Level(lvl).With().Timestamp().Logger()
}

func consoleOr(w io.Writer, format string) io.Writer {
	if strings.EqualFold(format, "json") {
		return w
	}
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
}
