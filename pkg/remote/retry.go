package remote

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultAttempts is used when a Policy leaves Attempts unset.
	DefaultAttempts = 3
	// DefaultTimeout is used when a Policy leaves Timeout unset.
	DefaultTimeout = 10 * time.Second
)

// Policy bounds a network operation: Attempts tries, each under its own
// Timeout deadline, with an optional fixed Backoff between tries.
type Policy struct {
	Attempts int
	Timeout  time.Duration
	Backoff  time.Duration
}

// WithDefaults fills unset fields.
func (p Policy) WithDefaults() Policy {
	if p.Attempts <= 0 {
		p.Attempts = DefaultAttempts
	}
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	return p
}

// ExhaustedError is returned by Do after every attempt failed. Err is the
// failure of the last attempt.
type ExhaustedError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: giving up after %d attempt(s): %v", e.Op, e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Do runs fn until it succeeds or the policy's attempts are used up. A timeout
// counts as a failed attempt. Cancellation of ctx stops retrying at once.
func Do(ctx context.Context, p Policy, op string, fn func(ctx context.Context) error) error {
	p = p.WithDefaults()

	var lastErr error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if attempt > 1 && p.Backoff > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Backoff):
			}
		}

		err := runAttempt(ctx, p.Timeout, fn)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return ctx.Err()
		}

		slog.Warn("request attempt failed",
			"op", op,
			"attempt", attempt,
			"attempts", p.Attempts,
			"error", err,
		)
	}
	return &ExhaustedError{Op: op, Attempts: p.Attempts, Err: lastErr}
}

func runAttempt(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(attemptCtx)
}
