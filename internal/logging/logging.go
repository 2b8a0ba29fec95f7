// Package logging constructs the zerolog logger used across ccnotify.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	// Path is the log file location. Empty disables file output.
	Path string
	// Debug lowers the level to debug and mirrors output to stderr.
	Debug bool
}

// New builds a logger writing to a size-rotated file. The logger is
// returned by value and passed explicitly to components; nothing in this
// module touches zerolog's global state.
func New(opts Options) zerolog.Logger {
	var writers []io.Writer

	if opts.Path != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    10, // megabytes
			MaxBackups: 1,
			MaxAge:     7, // days
		})
	}
	if opts.Debug {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Nop returns a disabled logger for tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
