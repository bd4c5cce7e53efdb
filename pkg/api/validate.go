package api

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

var validActions = map[string]bool{
	ActionResolveURL:  true,
	ActionFetchRemote: true,
	ActionFetchLocal:  true,
	ActionExtract:     true,
	ActionGenerate:    true,
}

// Validate checks the request for configuration errors. Missing identity
// fields are reported by the actions that need them, not here.
func (r *Request) Validate() error {
	seen := make(map[string]int)
	for i, action := range r.Actions {
		if !validActions[action] {
			return fmt.Errorf("action %d: unknown action %q", i, action)
		}
		if prev, exists := seen[action]; exists {
			return fmt.Errorf("action %d: duplicate action %q (first listed at %d)", i, action, prev)
		}
		seen[action] = i
	}

	if err := validateGlobs("files.include", r.Files.Include); err != nil {
		return err
	}
	if err := validateGlobs("files.exclude", r.Files.Exclude); err != nil {
		return err
	}

	for i, g := range r.Generate {
		if err := validateGenerateConfig(g); err != nil {
			return fmt.Errorf("generate %d: %w", i, err)
		}
	}

	if len(r.Generate) > 0 && len(r.Actions) > 0 && !slices.Contains(r.Actions, ActionGenerate) {
		return fmt.Errorf("generate entries are configured but actions do not include %q", ActionGenerate)
	}

	return nil
}

// Validate checks the batch for errors.
func (b *Batch) Validate() error {
	if len(b.Requests) == 0 {
		return fmt.Errorf("requests list is empty")
	}

	names := make(map[string]bool)
	destinations := make(map[string]bool)

	for i := range b.Requests {
		r := &b.Requests[i]
		name := r.DisplayName()
		if names[name] {
			return fmt.Errorf("request %q: duplicate name", name)
		}
		names[name] = true

		if r.Destination == "" {
			return fmt.Errorf("request %q: destination is required", name)
		}
		if destinations[r.Destination] {
			return fmt.Errorf("request %q: duplicate destination %q", name, r.Destination)
		}
		destinations[r.Destination] = true

		if err := r.Validate(); err != nil {
			return fmt.Errorf("request %q: %w", name, err)
		}
	}

	return nil
}

func validateGenerateConfig(g GenerateConfig) error {
	if g.Output == "" {
		return fmt.Errorf("output is required")
	}
	if g.Template == "" {
		return fmt.Errorf("template is required")
	}
	if !filepath.IsLocal(filepath.FromSlash(g.Output)) {
		return fmt.Errorf("output %q must be relative to the destination", g.Output)
	}
	return nil
}

func validateGlobs(field string, patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%s: invalid glob %q", field, p)
		}
	}
	return nil
}
