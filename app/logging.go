package app

import (
	"fmt"
	"strings"

	"glimmer/hal"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// NewLogger returns a JSON logger that writes one record per line to out.
// A nil out yields a nil, silent logger.
func NewLogger(out hal.Logger, level logiface.Level) *logiface.Logger[logiface.Event] {
	if out == nil {
		return nil
	}
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithTimeField(``)),
		stumpy.L.WithWriter(logiface.WriterFunc[*stumpy.Event](func(e *stumpy.Event) error {
			out.WriteLineBytes(e.Bytes())
			return nil
		})),
		stumpy.L.WithLevel(level),
	).Logger()
}

var levelNames = map[string]logiface.Level{
	"trace":   logiface.LevelTrace,
	"debug":   logiface.LevelDebug,
	"info":    logiface.LevelInformational,
	"notice":  logiface.LevelNotice,
	"warning": logiface.LevelWarning,
	"warn":    logiface.LevelWarning,
	"error":   logiface.LevelError,
	"off":     logiface.LevelDisabled,
}

// ParseLevel maps a flag value to a level.
func ParseLevel(s string) (logiface.Level, error) {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
