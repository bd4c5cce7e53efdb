package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TemplateMarker marks an entry whose content is rendered. It may appear as
// any dot-separated part of a name ("app.json.tpl", "README.tpl.md") and is
// stripped from the final file name.
const TemplateMarker = ".tpl"

// tokenPattern matches {{ key }} and {{ key | fn | fn }}.
var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.\-]*)\s*((?:\|\s*[A-Za-z_][A-Za-z0-9_]*\s*)*)\}\}`)

// Tokens substitutes every token whose key is present in data. Tokens with
// unknown keys are left as they are, so text without matching tokens comes
// back unchanged.
func Tokens(text string, data map[string]any) (string, error) {
	if len(data) == 0 || !strings.Contains(text, "{{") {
		return text, nil
	}

	var firstErr error
	out := tokenPattern.ReplaceAllStringFunc(text, func(match string) string {
		if firstErr != nil {
			return match
		}
		groups := tokenPattern.FindStringSubmatch(match)
		key, pipes := groups[1], strings.TrimSpace(groups[2])

		value, ok := data[key]
		if !ok {
			return match
		}
		// A key present without a value renders empty.
		if value == nil {
			value = ""
		}
		if pipes == "" {
			return fmt.Sprint(value)
		}

		rendered, err := pipe(key, pipes, value)
		if err != nil {
			firstErr = fmt.Errorf("rendering token %q: %w", match, err)
			return match
		}
		return rendered
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// pipe runs a value through sprig functions, e.g. {{ appName | lower }}.
func pipe(key, pipes string, value any) (string, error) {
	src := fmt.Sprintf("{{ . %s }}", pipes)
	tmpl, err := template.New(key).Funcs(sprig.TxtFuncMap()).Parse(src)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, value); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// Name renders tokens in an entry name and strips the template marker.
func Name(name string, data map[string]any) (string, error) {
	rendered, err := Tokens(name, data)
	if err != nil {
		return "", err
	}
	return StripMarker(rendered), nil
}

// StripMarker removes the template marker from every path segment of name.
func StripMarker(name string) string {
	segments := strings.Split(name, "/")
	for i, seg := range segments {
		segments[i] = stripSegmentMarker(seg)
	}
	return strings.Join(segments, "/")
}

// HasMarker reports whether name carries the template marker.
func HasMarker(name string) bool {
	return StripMarker(name) != name
}

func stripSegmentMarker(seg string) string {
	marker := strings.TrimPrefix(TemplateMarker, ".")
	parts := strings.Split(seg, ".")
	kept := parts[:1]
	for _, p := range parts[1:] {
		if p != marker {
			kept = append(kept, p)
		}
	}
	// A bare ".tpl" file keeps its name.
	if out := strings.Join(kept, "."); out != "" {
		return out
	}
	return seg
}

// Content renders an entry's bytes when its name carries the template marker.
// Other entries are returned unchanged so binary assets pass through.
func Content(name string, content []byte, data map[string]any) ([]byte, error) {
	if !HasMarker(name) {
		return content, nil
	}
	rendered, err := Tokens(string(content), data)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	return []byte(rendered), nil
}

// NameTransform returns an extraction name hook bound to data.
func NameTransform(data map[string]any) func(string, []byte) (string, error) {
	return func(name string, _ []byte) (string, error) {
		return Name(name, data)
	}
}

// ContentTransform returns an extraction content hook bound to data.
func ContentTransform(data map[string]any) func(string, []byte) ([]byte, error) {
	return func(name string, content []byte) ([]byte, error) {
		return Content(name, content, data)
	}
}
