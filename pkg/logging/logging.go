// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

const (
	JSON = "json"
	Text = "text"
	Tint = "tint"
)

// Types lists the accepted handler types.
var Types = []string{Tint, Text, JSON}

// Initialize installs the default logger writing to w. Scaffolded files may
// go to stdout, so the CLI passes stderr.
func Initialize(w io.Writer, loggingType string, logLevelName string) error {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(logLevelName)); err != nil {
		return fmt.Errorf("could not parse log level: %w", err)
	}

	handler, err := newHandler(w, loggingType, logLevel)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))
	slog.Debug("logging initialized", "type", loggingType, "logLevel", logLevel)
	return nil
}

func newHandler(w io.Writer, loggingType string, level slog.Level) (slog.Handler, error) {
	opts := slog.HandlerOptions{
		AddSource: level <= slog.LevelDebug,
		Level:     level,
	}

	switch loggingType {
	case JSON:
		return slog.NewJSONHandler(w, &opts), nil
	case Text:
		return slog.NewTextHandler(w, &opts), nil
	case Tint:
		return tint.NewHandler(w, &tint.Options{
			AddSource: opts.AddSource,
			Level:     opts.Level,
		}), nil
	default:
		return nil, fmt.Errorf("unknown logging type: %s", loggingType)
	}
}

// New returns a logger tagged with a component attribute.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
