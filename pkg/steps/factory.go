package steps

import (
	"fmt"

	"github.com/systemstart/many-scaffold/pkg/api"
)

// Dependencies are the collaborators actions are built with.
type Dependencies struct {
	Resolver URLResolver
	Fetcher  ArchiveFetcher
	Generate []api.GenerateConfig
}

// NewAction creates an Action by name.
func NewAction(name string, deps Dependencies) (Action, error) {
	switch name {
	case api.ActionResolveURL:
		if deps.Resolver == nil {
			return nil, fmt.Errorf("action %q requires a url resolver", name)
		}
		return NewResolveURL(deps.Resolver), nil
	case api.ActionFetchRemote:
		if deps.Fetcher == nil {
			return nil, fmt.Errorf("action %q requires an archive fetcher", name)
		}
		return NewFetchRemote(deps.Fetcher), nil
	case api.ActionFetchLocal:
		return NewFetchLocal(), nil
	case api.ActionExtract:
		return NewExtract(), nil
	case api.ActionGenerate:
		return NewGenerate(deps.Generate), nil
	default:
		return nil, fmt.Errorf("unknown action: %s", name)
	}
}

// NewActions creates Actions for names, in order.
func NewActions(names []string, deps Dependencies) ([]Action, error) {
	actions := make([]Action, 0, len(names))
	for _, name := range names {
		a, err := NewAction(name, deps)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}
