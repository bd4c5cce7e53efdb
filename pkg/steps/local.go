package steps

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/systemstart/many-scaffold/pkg/api"
	"github.com/systemstart/many-scaffold/pkg/archive"
)

// BundleDir is the directory holding bundled template archives.
func BundleDir(templatesRoot, folderName string) string {
	return filepath.Join(templatesRoot, "plugins", "resource", folderName)
}

// BundleStem is the file stem of a bundled archive.
func BundleStem(group, language, scenario string) string {
	return fmt.Sprintf("%s.%s.%s", group, language, scenario)
}

// BundlePath is the on-disk location of the bundled archive for sc.
func BundlePath(sc *ScaffoldContext) string {
	stem := sc.LocalBundleID
	if stem == "" {
		stem = BundleStem(sc.Group, sc.Language, sc.Scenario)
	}
	return filepath.Join(BundleDir(sc.TemplatesRoot, sc.TemplatesFolderName), stem+".zip")
}

type fetchLocalAction struct{}

// NewFetchLocal creates the action that loads the bundled archive. It only does
// work when the remote tier left Archive empty.
func NewFetchLocal() Action {
	return &fetchLocalAction{}
}

func (a *fetchLocalAction) Name() string { return api.ActionFetchLocal }

func (a *fetchLocalAction) Recovery() Recovery { return Recovery{} }

func (a *fetchLocalAction) Run(_ context.Context, sc *ScaffoldContext) error {
	if sc.Archive != nil {
		return nil
	}
	if err := requireParams(a.Name(),
		param{"group", sc.Group},
		param{"language", sc.Language},
		param{"scenario", sc.Scenario},
		param{"templatesRoot", sc.TemplatesRoot},
		param{"templatesFolderName", sc.TemplatesFolderName},
	); err != nil {
		return err
	}

	path := BundlePath(sc)
	h, err := archive.Open(path)
	if err != nil {
		return &LocalFallbackError{Path: path, Err: err}
	}

	sc.Archive = h
	slog.Info("using local template", "path", path, "digest", h.Digest())
	return nil
}
