package processing

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/systemstart/many-scaffold/pkg/steps"
)

const bundleExt = ".zip"

// Bundle is a template archive shipped with the installation.
type Bundle struct {
	Group    string
	Language string
	Scenario string
	Path     string
}

// ID is the "<group>.<language>.<scenario>" stem of the bundle.
func (b Bundle) ID() string {
	return steps.BundleStem(b.Group, b.Language, b.Scenario)
}

// DiscoverBundles lists the bundled archives under the local fallback layout
// of templatesRoot. Files not named "<group>.<language>.<scenario>.zip" are
// ignored. A missing bundle directory yields no bundles. Results are sorted
// by ID.
func DiscoverBundles(templatesRoot, folderName string) ([]Bundle, error) {
	dir := steps.BundleDir(templatesRoot, folderName)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading bundle directory: %w", err)
	}

	var bundles []Bundle
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		b, ok := parseBundleName(e.Name())
		if !ok {
			continue
		}
		b.Path = filepath.Join(dir, e.Name())
		bundles = append(bundles, b)
	}

	slices.SortFunc(bundles, func(a, b Bundle) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return bundles, nil
}

func parseBundleName(name string) (Bundle, bool) {
	stem, ok := strings.CutSuffix(name, bundleExt)
	if !ok {
		return Bundle{}, false
	}
	parts := strings.Split(stem, ".")
	if len(parts) != 3 || slices.Contains(parts, "") {
		return Bundle{}, false
	}
	return Bundle{Group: parts[0], Language: parts[1], Scenario: parts[2]}, true
}
