package render

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter reports whether an archive entry belongs to the requested template.
// It receives the normalized entry name.
type Filter func(name string) bool

// NormalizePath converts an entry name to a clean, slash-separated relative path.
func NormalizePath(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return ""
	}
	cleaned := path.Clean(name)
	if cleaned == "." {
		return ""
	}
	return cleaned
}

// StripPrefix removes a leading "<prefix>/" from a normalized name.
func StripPrefix(name, prefix string) string {
	if prefix == "" {
		return name
	}
	return strings.TrimPrefix(name, prefix+"/")
}

// PrefixFilter accepts entries under "<prefix>/". An empty prefix accepts everything.
func PrefixFilter(prefix string) Filter {
	prefix = NormalizePath(prefix)
	return func(name string) bool {
		if prefix == "" {
			return true
		}
		return strings.HasPrefix(name, prefix+"/")
	}
}

// All combines filters with logical AND. Nil filters are ignored.
func All(filters ...Filter) Filter {
	return func(name string) bool {
		for _, f := range filters {
			if f != nil && !f(name) {
				return false
			}
		}
		return true
	}
}

// ExcludeGlobs rejects entries matching any of the doublestar patterns.
func ExcludeGlobs(patterns []string) (Filter, error) {
	if err := validatePatterns(patterns); err != nil {
		return nil, fmt.Errorf("exclude filter: %w", err)
	}
	return func(name string) bool {
		return !matchAny(patterns, name)
	}, nil
}

// IncludeGlobs accepts only entries matching one of the doublestar patterns.
// No patterns means everything is included.
func IncludeGlobs(patterns []string) (Filter, error) {
	if err := validatePatterns(patterns); err != nil {
		return nil, fmt.Errorf("include filter: %w", err)
	}
	return func(name string) bool {
		return len(patterns) == 0 || matchAny(patterns, name)
	}, nil
}

// Unless excludes the named entries (by base name) unless enabled is set,
// e.g. an optional repair file gated by a feature flag.
func Unless(enabled bool, baseNames ...string) Filter {
	return func(name string) bool {
		if enabled {
			return true
		}
		base := path.Base(name)
		for _, b := range baseNames {
			if base == b {
				return false
			}
		}
		return true
	}
}

func validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob %q", p)
		}
	}
	return nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if doublestar.MatchUnvalidated(p, name) {
			return true
		}
	}
	return false
}
