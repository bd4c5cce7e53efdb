package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/systemstart/many-scaffold/pkg/render"
)

// DefaultConcurrency bounds parallel entry writes during extraction.
const DefaultConcurrency = 8

// Options control how entries are selected and transformed.
type Options struct {
	// Prefix is the template bucket inside the archive. Entries outside
	// "<Prefix>/" are skipped and the prefix is stripped from the rest.
	Prefix string
	// Filter receives the normalized entry name and composes with Prefix.
	Filter render.Filter
	// Name maps the prefix-stripped name to the final relative path.
	Name func(name string, data []byte) (string, error)
	// Content maps the entry bytes to the bytes written to disk. It receives
	// the prefix-stripped name before Name is applied.
	Content     func(name string, data []byte) ([]byte, error)
	Concurrency int
}

// Extract writes every selected file entry of h under dest. Entries are written
// concurrently; the first failure cancels the remaining writes and is returned.
func Extract(ctx context.Context, h *Handle, dest string, opts Options) error {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	filter := render.All(render.PrefixFilter(opts.Prefix), opts.Filter)

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("resolving destination: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var written, skipped int
	for _, f := range h.Files() {
		name := render.NormalizePath(f.Name)
		if name == "" || !filter(name) {
			skipped++
			continue
		}
		written++
		f := f // per-iteration copy; go.mod targets Go 1.21 loop semantics
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return extractEntry(absDest, f, render.StripPrefix(name, render.NormalizePath(opts.Prefix)), opts)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Debug("archive extracted", "destination", absDest, "files", written, "skipped", skipped)
	return nil
}

func extractEntry(absDest string, f *zip.File, name string, opts Options) error {
	data, err := readEntry(f)
	if err != nil {
		return err
	}

	target := name
	if opts.Name != nil {
		target, err = opts.Name(name, data)
		if err != nil {
			return fmt.Errorf("transforming name %s: %w", f.Name, err)
		}
	}
	target = render.NormalizePath(target)
	if target == "" {
		return fmt.Errorf("entry %s: empty target path", f.Name)
	}

	if opts.Content != nil {
		data, err = opts.Content(name, data)
		if err != nil {
			return fmt.Errorf("transforming content %s: %w", f.Name, err)
		}
	}

	outPath := filepath.Join(absDest, filepath.FromSlash(target))
	if !within(absDest, outPath) {
		return fmt.Errorf("entry %s escapes destination", f.Name)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return fmt.Errorf("creating parent directories for %s: %w", target, err)
	}

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	if err := os.WriteFile(outPath, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
