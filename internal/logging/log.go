package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Logger output configuration shared by all spellctl binaries.
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Bypass    bool
}

// Logging defaults for interactive runtime use. Color is disabled when
// stderr is not a terminal.
func DefaultConfig() Config {
	return Config{
		Level:     zerolog.InfoLevel,
		Timestamp: true,
		NoColor:   !isatty.IsTerminal(os.Stderr.Fd()),
	}
}

var (
	mu     sync.RWMutex
	logger = newLogger(DefaultConfig())
)

func apply(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(cfg)
}

func newLogger(cfg Config) zerolog.Logger {
	var w io.Writer = os.Stderr
	if !cfg.Bypass {
		cw := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    cfg.NoColor,
			TimeFormat: time.Kitchen,
		}
		if !cfg.Timestamp {
			cw.PartsExclude = []string{zerolog.TimestampFieldName}
		}
		w = cw
	}
	return zerolog.New(w).Level(cfg.Level).With().Timestamp().Logger()
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Tracef(format string, args ...any) {
	l := current()
	l.Trace().Msgf(format, args...)
}

func Debugf(format string, args ...any) {
	l := current()
	l.Debug().Msgf(format, args...)
}

func Infof(format string, args ...any) {
	l := current()
	l.Info().Msgf(format, args...)
}

func Warnf(format string, args ...any) {
	l := current()
	l.Warn().Msgf(format, args...)
}

func Errorf(format string, args ...any) {
	l := current()
	l.Error().Msgf(format, args...)
}

// Logf emits a level-less line that bypasses level filtering unless the
// logger is fully disabled.
func Logf(format string, args ...any) {
	l := current()
	l.Log().Msgf(format, args...)
}
