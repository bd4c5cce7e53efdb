package steps

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/systemstart/many-scaffold/pkg/api"
	"github.com/systemstart/many-scaffold/pkg/render"
)

type generateAction struct {
	files []api.GenerateConfig
}

// NewGenerate creates the action that renders extra files into Destination
// with the context's replace map.
func NewGenerate(files []api.GenerateConfig) Action {
	return &generateAction{files: files}
}

func (a *generateAction) Name() string { return api.ActionGenerate }

func (a *generateAction) Recovery() Recovery { return Recovery{} }

func (a *generateAction) Run(_ context.Context, sc *ScaffoldContext) error {
	if err := requireParams(a.Name(), param{"destination", sc.Destination}); err != nil {
		return err
	}

	for _, f := range a.files {
		rel := filepath.FromSlash(f.Output)
		if !filepath.IsLocal(rel) {
			return fmt.Errorf("output %q escapes destination", f.Output)
		}

		content, err := render.Tokens(f.Template, sc.Data)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", f.Output, err)
		}

		outPath := filepath.Join(sc.Destination, rel)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
			return fmt.Errorf("creating parent directories: %w", err)
		}
		if err := os.WriteFile(outPath, []byte(content), 0o600); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}

		slog.Info("generate action wrote file", "output", f.Output)
	}
	return nil
}
