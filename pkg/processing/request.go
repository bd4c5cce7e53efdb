package processing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/systemstart/many-scaffold/pkg/api"
	"github.com/systemstart/many-scaffold/pkg/render"
	"github.com/systemstart/many-scaffold/pkg/steps"
)

// RunRequest scaffolds one request on top of base. Request fields override
// the base identity; replacements are merged over base.Data.
func RunRequest(ctx context.Context, s *Scaffolder, base steps.ScaffoldContext, req *api.Request) error {
	sc, err := requestContext(base, req)
	if err != nil {
		return err
	}

	actions, err := steps.NewActions(req.ActionList(), steps.Dependencies{
		Resolver: s.Resolver,
		Fetcher:  s.Fetcher,
		Generate: req.Generate,
	})
	if err != nil {
		return fmt.Errorf("building actions: %w", err)
	}

	slog.Info("scaffolding", "request", req.DisplayName(), "destination", sc.Destination)
	return s.Scaffold(ctx, sc, actions...)
}

// RunBatch runs every request of b and returns a summary of the failures.
// A failed request does not stop the remaining ones.
func RunBatch(ctx context.Context, s *Scaffolder, base steps.ScaffoldContext, b *api.Batch) error {
	base.Data = MergeContext(base.Data, b.Context)

	var failed []string
	for i := range b.Requests {
		req := &b.Requests[i]
		if err := RunRequest(ctx, s, base, req); err != nil {
			slog.Error("request failed", "request", req.DisplayName(), "error", err)
			failed = append(failed, req.DisplayName())
			continue
		}
		slog.Info("request succeeded", "request", req.DisplayName())
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d request(s) failed: %v", len(failed), failed)
	}
	return nil
}

func requestContext(base steps.ScaffoldContext, req *api.Request) (*steps.ScaffoldContext, error) {
	sc := base
	overrideString(&sc.Group, req.Group)
	overrideString(&sc.Language, req.Language)
	overrideString(&sc.Scenario, req.Scenario)
	overrideString(&sc.Version, req.Version)
	overrideString(&sc.ResolvedURL, req.URL)
	overrideString(&sc.Destination, req.Destination)
	sc.TemplateName = req.TemplateName

	sc.Data = MergeContext(base.Data, req.Replace)
	sc.NameTransform = render.NameTransform(sc.Data)
	sc.ContentTransform = render.ContentTransform(sc.Data)

	include, err := render.IncludeGlobs(req.Files.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := render.ExcludeGlobs(req.Files.Exclude)
	if err != nil {
		return nil, err
	}
	sc.Filter = render.All(base.Filter, include, exclude)

	return &sc, nil
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
