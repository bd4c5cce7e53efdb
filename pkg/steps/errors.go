package steps

import (
	"fmt"
	"strings"
)

// MissingParameterError reports a required context field that is unset. It is
// a configuration error and is never retried.
type MissingParameterError struct {
	Action string
	Params []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: missing required parameter(s): %s", e.Action, strings.Join(e.Params, ", "))
}

type param struct {
	name  string
	value string
}

// requireParams returns a *MissingParameterError naming every empty param, or nil.
func requireParams(action string, params ...param) error {
	var missing []string
	for _, p := range params {
		if p.value == "" {
			missing = append(missing, p.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingParameterError{Action: action, Params: missing}
}

// TemplateURLResolutionError means no download URL could be resolved.
type TemplateURLResolutionError struct {
	Group    string
	Language string
	Scenario string
	Err      error
}

func (e *TemplateURLResolutionError) Error() string {
	return fmt.Sprintf("resolving template url for %s.%s.%s: %v", e.Group, e.Language, e.Scenario, e.Err)
}

func (e *TemplateURLResolutionError) Unwrap() error { return e.Err }

// FetchKind discriminates archive download failures.
type FetchKind int

const (
	FetchNetwork FetchKind = iota
	FetchRateLimited
)

func (k FetchKind) String() string {
	switch k {
	case FetchRateLimited:
		return "rate-limited"
	default:
		return "network"
	}
}

// FetchError means the archive at URL could not be downloaded.
type FetchError struct {
	URL  string
	Kind FetchKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s (%s): %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// LocalFallbackError means the bundled archive is missing or unreadable.
// There is no tier after it.
type LocalFallbackError struct {
	Path string
	Err  error
}

func (e *LocalFallbackError) Error() string {
	return fmt.Sprintf("loading local template %s: %v", e.Path, e.Err)
}

func (e *LocalFallbackError) Unwrap() error { return e.Err }

// ExtractionError means the archive could not be written to Destination.
type ExtractionError struct {
	Destination string
	Err         error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting into %s: %v", e.Destination, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ActionError wraps a fatal failure with the name of the action that raised it.
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %q failed: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }
