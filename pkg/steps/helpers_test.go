package steps

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/systemstart/many-scaffold/pkg/remote"
)

// zipBytes returns zip bytes for name->content entries.
func zipBytes(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// writeBundle writes a bundled archive for sc's identity under its templates root.
func writeBundle(t *testing.T, sc *ScaffoldContext, entries map[string]string) string {
	t.Helper()
	path := BundlePath(sc)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, zipBytes(t, entries), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

type fakeResolver struct {
	url   string
	err   error
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, _, _, _, _ string, _ remote.Policy) (string, error) {
	f.calls++
	return f.url, f.err
}

type fakeFetcher struct {
	data  []byte
	err   error
	calls int
	urls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, _ remote.Policy) ([]byte, error) {
	f.calls++
	f.urls = append(f.urls, url)
	return f.data, f.err
}
