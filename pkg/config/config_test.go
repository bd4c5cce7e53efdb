package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("SCAFFOLD_GITHUB_TOKEN", "")

	s, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &Settings{
		RetryLimit:      3,
		Timeout:         10 * time.Second,
		Concurrency:     8,
		TemplatesRoot:   ".",
		TemplatesFolder: "templates",
		TagPrefix:       "templates@",
		UserAgent:       "many-scaffold",
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
	if s.RemoteEnabled() {
		t.Error("remote tier should be disabled without a download base url")
	}
}

func TestLoad_File(t *testing.T) {
	f := filepath.Join(t.TempDir(), "scaffold.yaml")
	content := `
retry_limit: 5
timeout: 2s
templates_root: /opt/scaffold
download_base_url: https://example.com/releases/download
tag_list_url: https://example.com/tags.txt
version: "~4.2"
`
	if err := os.WriteFile(f, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.RetryLimit != 5 || s.Timeout != 2*time.Second {
		t.Errorf("unexpected retry settings: %d, %s", s.RetryLimit, s.Timeout)
	}
	if s.TemplatesRoot != "/opt/scaffold" || s.Version != "~4.2" {
		t.Errorf("unexpected settings: %+v", s)
	}
	if !s.RemoteEnabled() {
		t.Error("remote tier should be enabled")
	}
	if s.Concurrency != 8 {
		t.Errorf("unset keys should keep defaults, got concurrency %d", s.Concurrency)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "scaffold.yaml")
	if err := os.WriteFile(f, []byte("retry_limit: 5\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SCAFFOLD_RETRY_LIMIT", "7")
	t.Setenv("GITHUB_TOKEN", "ghp_test")

	s, err := Load(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.RetryLimit != 7 {
		t.Errorf("expected env override, got %d", s.RetryLimit)
	}
	if s.GitHubToken != "ghp_test" {
		t.Errorf("expected token from GITHUB_TOKEN, got %q", s.GitHubToken)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	f := filepath.Join(t.TempDir(), "scaffold.yaml")
	if err := os.WriteFile(f, []byte("retry_limit: 0\nconcurrency: -1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(f)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"retry_limit", "concurrency"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}
