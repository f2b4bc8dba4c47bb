// Package logger owns the process-wide zerolog instance. Initialise it once
// in main with Init; packages that cannot take a logger through their
// constructor may fall back to Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the logger is built.
type Options struct {
	// Level is the minimum level emitted: trace, debug, info, warn or error.
	// Unknown or empty values fall back to info.
	Level string
	// Pretty switches from JSON lines to a colourised console format.
	// Keep it off outside local development.
	Pretty bool
	// Output defaults to os.Stdout when nil.
	Output io.Writer
}

var (
	instance    zerolog.Logger
	once        sync.Once
	initialized bool
)

// Init builds the singleton logger. Repeated calls return the logger built
// by the first call unchanged.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		lvl := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		instance = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Str("service", "identity").
			Logger()

		initialized = true
	})
	return instance
}

// Get returns the singleton logger. Panics when Init has not run yet, which
// always indicates a wiring bug in main.
func Get() zerolog.Logger {
	if !initialized {
		panic("logger: Get() called before Init()")
	}
	return instance
}

// Reset discards the singleton so the next Init rebuilds it. Test use only.
func Reset() {
	once = sync.Once{}
	instance = zerolog.Logger{}
	initialized = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
