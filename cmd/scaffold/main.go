package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
)

var version = "dev"

const (
	_ = iota
	exitCommandFailed
	exitDotenvError
	exitLoadConfigurationFileFailed
	exitLoggingSetupFailed
	exitLoadContextFailed
	exitDestinationFailed
)

// exitError carries the process exit code for a failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	slog.Error("scaffold failed", "error", err)
	code := exitCommandFailed
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
	}
	os.Exit(code)
}
