package processing

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadContextFile reads a YAML file of replacements and returns it as a map.
func LoadContextFile(filename string) (map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading context file: %w", err)
	}

	var ctx map[string]any
	if err := yaml.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parsing context file: %w", err)
	}

	if ctx == nil {
		ctx = make(map[string]any)
	}

	return ctx, nil
}

// MergeContext performs a shallow merge of layers into a new map. Later layers
// override earlier ones at the top level; nil layers are skipped.
func MergeContext(layers ...map[string]any) map[string]any {
	size := 0
	for _, l := range layers {
		size += len(l)
	}
	merged := make(map[string]any, size)
	for _, l := range layers {
		maps.Copy(merged, l)
	}
	return merged
}
