package processing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/systemstart/many-scaffold/pkg/steps"
)

// Policy observes a pipeline run and decides what a failed action means.
// OnActionError returning nil lets the run continue with the next action.
type Policy interface {
	OnActionStart(ctx context.Context, action steps.Action, sc *steps.ScaffoldContext)
	OnActionEnd(ctx context.Context, action steps.Action, sc *steps.ScaffoldContext)
	OnActionError(ctx context.Context, action steps.Action, sc *steps.ScaffoldContext, err error) error
}

// NopPolicy fails fast: every error aborts the run unchanged.
type NopPolicy struct{}

func (NopPolicy) OnActionStart(context.Context, steps.Action, *steps.ScaffoldContext) {}

func (NopPolicy) OnActionEnd(context.Context, steps.Action, *steps.ScaffoldContext) {}

func (NopPolicy) OnActionError(_ context.Context, _ steps.Action, _ *steps.ScaffoldContext, err error) error {
	return err
}

// FallbackPolicy suppresses failures of recoverable actions so a later action
// can take over, and records that it did so on the context. Missing
// parameters are configuration errors and are never suppressed.
type FallbackPolicy struct {
	NopPolicy
}

func (FallbackPolicy) OnActionError(_ context.Context, action steps.Action, sc *steps.ScaffoldContext, err error) error {
	var missing *steps.MissingParameterError
	rec := action.Recovery()
	if !rec.Recoverable || errors.As(err, &missing) {
		return &steps.ActionError{Action: action.Name(), Err: err}
	}

	slog.Info("falling back to local template", "action", action.Name(), "fallback", rec.Fallback, "error", err)
	if !sc.FallbackTaken {
		sc.FallbackTaken = true
		sc.FallbackCause = err
	}
	return nil
}

var (
	// ErrSampleRateLimited means the sample host refused the download for
	// exceeding its request quota.
	ErrSampleRateLimited = errors.New("sample download rate limited")
	// ErrSampleUnavailable means the sample could not be downloaded.
	ErrSampleUnavailable = errors.New("sample download failed")
)

// SamplePolicy maps fetch failures of a sample download to the sample
// sentinels. There is no local tier for samples, so every error aborts.
type SamplePolicy struct {
	NopPolicy
}

func (SamplePolicy) OnActionError(_ context.Context, _ steps.Action, _ *steps.ScaffoldContext, err error) error {
	var fetchErr *steps.FetchError
	if !errors.As(err, &fetchErr) {
		return err
	}
	if fetchErr.Kind == steps.FetchRateLimited {
		return fmt.Errorf("%w, set a github token to raise the limit: %w", ErrSampleRateLimited, err)
	}
	return fmt.Errorf("%w: %w", ErrSampleUnavailable, err)
}

// LoggingPolicy reports progress for every action and delegates decisions to
// Inner. A nil Inner behaves like NopPolicy.
type LoggingPolicy struct {
	Inner  Policy
	Logger *slog.Logger

	started time.Time
}

func (p *LoggingPolicy) OnActionStart(ctx context.Context, action steps.Action, sc *steps.ScaffoldContext) {
	p.started = time.Now()
	p.logger().Debug("action started", "action", action.Name())
	p.inner().OnActionStart(ctx, action, sc)
}

func (p *LoggingPolicy) OnActionEnd(ctx context.Context, action steps.Action, sc *steps.ScaffoldContext) {
	p.logger().Info("action finished", "action", action.Name(), "elapsed", time.Since(p.started))
	p.inner().OnActionEnd(ctx, action, sc)
}

func (p *LoggingPolicy) OnActionError(ctx context.Context, action steps.Action, sc *steps.ScaffoldContext, err error) error {
	p.logger().Warn("action failed", "action", action.Name(), "elapsed", time.Since(p.started), "error", err)
	return p.inner().OnActionError(ctx, action, sc, err)
}

func (p *LoggingPolicy) inner() Policy {
	if p.Inner == nil {
		return NopPolicy{}
	}
	return p.Inner
}

func (p *LoggingPolicy) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}
