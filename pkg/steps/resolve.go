package steps

import (
	"context"
	"log/slog"

	"github.com/systemstart/many-scaffold/pkg/api"
	"github.com/systemstart/many-scaffold/pkg/remote"
)

// URLResolver maps a template identity to a download URL.
type URLResolver interface {
	Resolve(ctx context.Context, group, language, scenario, constraint string, p remote.Policy) (string, error)
}

type resolveURLAction struct {
	resolver URLResolver
}

// NewResolveURL creates the action that fills ResolvedURL.
func NewResolveURL(r URLResolver) Action {
	return &resolveURLAction{resolver: r}
}

func (a *resolveURLAction) Name() string { return api.ActionResolveURL }

func (a *resolveURLAction) Recovery() Recovery {
	return Recovery{Recoverable: true, Fallback: api.ActionFetchLocal}
}

func (a *resolveURLAction) Run(ctx context.Context, sc *ScaffoldContext) error {
	if sc.ResolvedURL != "" || sc.Archive != nil {
		return nil
	}
	if err := requireParams(a.Name(),
		param{"group", sc.Group},
		param{"language", sc.Language},
		param{"scenario", sc.Scenario},
	); err != nil {
		return err
	}

	url, err := a.resolver.Resolve(ctx, sc.Group, sc.Language, sc.Scenario, sc.Version, sc.RetryPolicy())
	if err != nil {
		return &TemplateURLResolutionError{
			Group:    sc.Group,
			Language: sc.Language,
			Scenario: sc.Scenario,
			Err:      err,
		}
	}

	sc.ResolvedURL = url
	slog.Info("template url resolved", "url", url)
	return nil
}
