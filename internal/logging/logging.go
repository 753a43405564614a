// Package logging builds the slog loggers handed to every component.
// Components never fall back to a global logger; a nil logger is replaced
// with [Nop].
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// New returns a logger writing to w at the given level. format is "text" or
// "json".
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
}

func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", level)
	}
}

// Nop discards every record.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// Once gates a log call so it fires on the first Do after construction or
// after the latest Reset. Used for conditions that persist across ticks.
type Once struct {
	mu    sync.Mutex
	fired bool
}

// Do runs fn if the gate is open and closes it. It reports whether fn ran.
func (o *Once) Do(fn func()) bool {
	o.mu.Lock()
	if o.fired {
		o.mu.Unlock()
		return false
	}
	o.fired = true
	o.mu.Unlock()
	fn()
	return true
}

// Reset reopens the gate. It reports whether the gate had fired.
func (o *Once) Reset() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	was := o.fired
	o.fired = false
	return was
}
