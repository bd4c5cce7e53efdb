package processing

import (
	"archive/zip"
	"bytes"
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/systemstart/many-scaffold/pkg/remote"
	"github.com/systemstart/many-scaffold/pkg/steps"
)

const bundleFolder = "templates"

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

// writeBundle installs a bundled archive for group.language.scenario under root.
func writeBundle(t *testing.T, root, group, language, scenario string, entries map[string]string) {
	t.Helper()
	dir := steps.BundleDir(root, bundleFolder)
	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, steps.BundleStem(group, language, scenario)+".zip")
	if err := os.WriteFile(path, zipBytes(t, entries), 0600); err != nil {
		t.Fatal(err)
	}
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	got := make(map[string]string)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return got
}

// templateServer serves a tag list and template archives, counting hits.
type templateServer struct {
	*httptest.Server

	tagStatus int
	tags      string
	archives  map[string][]byte
	fetchCode int
	tagHits   atomic.Int32
	fetchHits atomic.Int32
}

func newTemplateServer(t *testing.T) *templateServer {
	t.Helper()
	ts := &templateServer{
		tagStatus: http.StatusOK,
		archives:  make(map[string][]byte),
	}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tags" {
			ts.tagHits.Add(1)
			w.WriteHeader(ts.tagStatus)
			_, _ = w.Write([]byte(ts.tags))
			return
		}
		ts.fetchHits.Add(1)
		if ts.fetchCode != 0 {
			w.WriteHeader(ts.fetchCode)
			return
		}
		data, ok := ts.archives[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	t.Cleanup(ts.Close)
	return ts
}

// scaffolder builds a Scaffolder against ts. withTags routes resolution
// through the tag list endpoint.
func (ts *templateServer) scaffolder(withTags bool) *Scaffolder {
	client := remote.NewClient(remote.WithHTTPClient(ts.Client()))
	cfg := remote.LocatorConfig{DownloadBaseURL: ts.URL}
	if withTags {
		cfg.TagListURL = ts.URL + "/tags"
	}
	return &Scaffolder{
		Resolver: remote.NewLocator(client, cfg),
		Fetcher:  remote.NewFetcher(client),
	}
}

type stubAction struct {
	name string
	rec  steps.Recovery
	err  error
	log  *[]string
}

func (a *stubAction) Name() string { return a.name }

func (a *stubAction) Recovery() steps.Recovery { return a.rec }

func (a *stubAction) Run(context.Context, *steps.ScaffoldContext) error {
	*a.log = append(*a.log, "run:"+a.name)
	return a.err
}

// recordPolicy records hook calls and lets decide choose the error outcome.
type recordPolicy struct {
	log    *[]string
	decide func(err error) error
}

func (p *recordPolicy) OnActionStart(_ context.Context, a steps.Action, _ *steps.ScaffoldContext) {
	*p.log = append(*p.log, "start:"+a.Name())
}

func (p *recordPolicy) OnActionEnd(_ context.Context, a steps.Action, _ *steps.ScaffoldContext) {
	*p.log = append(*p.log, "end:"+a.Name())
}

func (p *recordPolicy) OnActionError(_ context.Context, a steps.Action, _ *steps.ScaffoldContext, err error) error {
	*p.log = append(*p.log, "error:"+a.Name())
	if p.decide == nil {
		return err
	}
	return p.decide(err)
}
