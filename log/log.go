// Package log provides a thin, process-wide wrapper around zerolog so the
// rest of zkplex logs through a single configured sink instead of each
// package constructing its own logger.
package log

import (
	"cmp"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var (
	logger zerolog.Logger
	mu     sync.RWMutex
)

func init() {
	// Allow overriding the default log level via $ZKPLEX_LOG_LEVEL so tests
	// and CLI invocations can tune verbosity without touching code.
	Init(cmp.Or(os.Getenv("ZKPLEX_LOG_LEVEL"), "info"), "stderr")
}

// Init (re)configures the global logger. output is "stdout" or "stderr";
// any other value, including a file path, also writes to stderr.
func Init(level, output string) {
	var w = os.Stderr
	switch output {
	case "stdout":
		w = os.Stdout
	case "stderr", "":
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(lvl).
		With().Timestamp().Logger()
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Logger returns a copy of the current global logger.
func Logger() *zerolog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	return &l
}

func Debugw(msg string, kv ...interface{}) { Logger().Debug().Fields(kv).Msg(msg) }
func Infow(msg string, kv ...interface{})  { Logger().Info().Fields(kv).Msg(msg) }
func Warnw(msg string, kv ...interface{})  { Logger().Warn().Fields(kv).Msg(msg) }
func Errorw(err error, msg string, kv ...interface{}) {
	Logger().Error().Err(err).Fields(kv).Msg(msg)
}

func Debug(msg string) { Logger().Debug().Msg(msg) }
func Info(msg string)  { Logger().Info().Msg(msg) }
func Warn(msg string)  { Logger().Warn().Msg(msg) }

// Fatalf logs at fatal level and terminates the process. Reserved for the
// CLI entry point; the core never calls this.
func Fatalf(format string, args ...interface{}) {
	Logger().Fatal().Msgf(format, args...)
}
