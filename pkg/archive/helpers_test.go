package archive

import (
	"archive/zip"
	"bytes"
	"testing"
)

// buildZip returns zip bytes for name->content entries. Names ending in "/"
// become directory entries.
func buildZip(t *testing.T, entries map[string]string) []byte {
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

func mustHandle(t *testing.T, entries map[string]string) *Handle {
	t.Helper()
	h, err := FromBytes(buildZip(t, entries))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h
}
