package processing

import (
	"context"
	"fmt"

	"github.com/systemstart/many-scaffold/pkg/archive"
	"github.com/systemstart/many-scaffold/pkg/render"
	"github.com/systemstart/many-scaffold/pkg/steps"
)

// Scaffolder runs acquisition pipelines with a fixed set of collaborators.
type Scaffolder struct {
	Resolver steps.URLResolver
	Fetcher  steps.ArchiveFetcher
	// Policy governs Scaffold and RunTemplates. Nil means a logging
	// FallbackPolicy.
	Policy Policy
}

// DefaultActions returns the four-stage acquisition pipeline: resolve the
// download URL, fetch it, fall back to the bundled archive, extract.
func (s *Scaffolder) DefaultActions() []steps.Action {
	return []steps.Action{
		steps.NewResolveURL(s.Resolver),
		steps.NewFetchRemote(s.Fetcher),
		steps.NewFetchLocal(),
		steps.NewExtract(),
	}
}

// Scaffold runs actions against sc, or DefaultActions when none are given.
func (s *Scaffolder) Scaffold(ctx context.Context, sc *steps.ScaffoldContext, actions ...steps.Action) error {
	if len(actions) == 0 {
		actions = s.DefaultActions()
	}
	return Run(ctx, sc, actions, s.policy())
}

// Sample downloads the archive at sc.ResolvedURL and extracts it. Samples
// have no bundled copy, so failures surface as ErrSampleRateLimited or
// ErrSampleUnavailable.
func (s *Scaffolder) Sample(ctx context.Context, sc *steps.ScaffoldContext) error {
	if sc.ResolvedURL == "" {
		return &steps.MissingParameterError{Action: "sample", Params: []string{"url"}}
	}
	actions := []steps.Action{
		steps.NewFetchRemote(s.Fetcher),
		steps.NewExtract(),
	}
	return Run(ctx, sc, actions, &LoggingPolicy{Inner: SamplePolicy{}})
}

func (s *Scaffolder) policy() Policy {
	if s.Policy != nil {
		return s.Policy
	}
	return &LoggingPolicy{Inner: FallbackPolicy{}}
}

// TemplateInfo selects one template bucket of an archive together with the
// replacements used to render it.
type TemplateInfo struct {
	TemplateName string
	// Language overrides the base context's language when set.
	Language string
	Replace  map[string]any
	Filter   render.Filter
}

// RunTemplates scaffolds each template into base.Destination in order. Infos
// that share a bundle identity reuse the archive acquired by the first one.
func (s *Scaffolder) RunTemplates(ctx context.Context, base steps.ScaffoldContext, infos []TemplateInfo) error {
	archives := make(map[string]*archive.Handle)

	for _, info := range infos {
		sc := base
		if info.Language != "" {
			sc.Language = info.Language
		}
		sc.TemplateName = info.TemplateName
		sc.Data = MergeContext(base.Data, info.Replace)
		sc.NameTransform = render.NameTransform(sc.Data)
		sc.ContentTransform = render.ContentTransform(sc.Data)
		sc.Filter = render.All(base.Filter, info.Filter)

		key := steps.BundleStem(sc.Group, sc.Language, sc.Scenario)
		if h, ok := archives[key]; ok {
			sc.Archive = h
		}

		if err := s.Scaffold(ctx, &sc); err != nil {
			return fmt.Errorf("template %q: %w", info.TemplateName, err)
		}
		archives[key] = sc.Archive
	}

	return nil
}
