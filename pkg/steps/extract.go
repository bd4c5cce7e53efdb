package steps

import (
	"context"
	"log/slog"

	"github.com/systemstart/many-scaffold/pkg/api"
	"github.com/systemstart/many-scaffold/pkg/archive"
)

type extractAction struct{}

// NewExtract creates the action that writes Archive into Destination.
func NewExtract() Action {
	return &extractAction{}
}

func (a *extractAction) Name() string { return api.ActionExtract }

func (a *extractAction) Recovery() Recovery { return Recovery{} }

func (a *extractAction) Run(ctx context.Context, sc *ScaffoldContext) error {
	var params []string
	if sc.Destination == "" {
		params = append(params, "destination")
	}
	if sc.Archive == nil {
		params = append(params, "archive")
	}
	if len(params) > 0 {
		return &MissingParameterError{Action: a.Name(), Params: params}
	}

	err := archive.Extract(ctx, sc.Archive, sc.Destination, archive.Options{
		Prefix:      sc.TemplateName,
		Filter:      sc.Filter,
		Name:        sc.NameTransform,
		Content:     sc.ContentTransform,
		Concurrency: sc.Concurrency,
	})
	if err != nil {
		return &ExtractionError{Destination: sc.Destination, Err: err}
	}

	slog.Info("template extracted", "destination", sc.Destination)
	return nil
}
