// Package log provides the package-level structured logger used by the
// protocol orchestration layer, adapted from the teacher's log/log.go. It is
// intentionally minimal: crypto/* stays pure and never imports this package
//, so
// only protocol/* calls into it.
package log

import (
	"cmp"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logger zerolog.Logger
	mu     sync.RWMutex
)

func init() {
	Init(cmp.Or(os.Getenv("LOG_LEVEL"), "info"))
}

// Init (re)configures the global logger's level. Unparseable levels fall
// back to info.
func Init(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	mu.Lock()
	logger = l
	mu.Unlock()
}

func get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debugw logs a debug-level event with structured key/value fields. Fields
// are passed as alternating key, value pairs, matching the density the
// protocol layer needs for tracing a game's setup/mask/shuffle/reveal steps
// without paying zerolog's builder-chain syntax everywhere.
func Debugw(msg string, kv ...any) {
	event(get().Debug(), kv).Msg(msg)
}

// Infow logs an info-level event.
func Infow(msg string, kv ...any) {
	event(get().Info(), kv).Msg(msg)
}

// Warnw logs a warn-level event, attaching err under the "error" field when
// non-nil.
func Warnw(msg string, err error, kv ...any) {
	e := get().Warn()
	if err != nil {
		e = e.Err(err)
	}
	event(e, kv).Msg(msg)
}

func event(e *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}
