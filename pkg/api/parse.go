package api

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRequest reads a scaffold request file, resolves a relative destination
// against the file's directory, and validates it.
func LoadRequest(filename string) (*Request, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}

	var r Request
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	r.FilePath = absPath
	r.Destination = resolveDestination(filepath.Dir(absPath), r.Destination)

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("validating request %s: %w", filename, err)
	}

	return &r, nil
}

// LoadBatch reads a batch file, unmarshals it, and validates every request.
func LoadBatch(filename string) (*Batch, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}

	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	for i := range b.Requests {
		b.Requests[i].FilePath = absPath
		b.Requests[i].Destination = resolveDestination(filepath.Dir(absPath), b.Requests[i].Destination)
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("validating batch file: %w", err)
	}

	return &b, nil
}

func resolveDestination(dir, dest string) string {
	if dest == "" || filepath.IsAbs(dest) {
		return dest
	}
	return filepath.Join(dir, dest)
}
