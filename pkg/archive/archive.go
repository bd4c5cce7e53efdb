// Package archive holds in-memory zip template archives and extracts them
// into a destination directory.
package archive

import (
	"archive/zip"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/zeebo/blake3"
)

// Handle is an opened zip archive held entirely in memory.
type Handle struct {
	reader *zip.Reader
	size   int64
	digest [32]byte
}

// FromBytes opens a zip archive from raw bytes.
func FromBytes(data []byte) (*Handle, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	// Non-local names are rejected per entry during extraction.
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && reader != nil) {
		return nil, fmt.Errorf("opening zip archive: %w", err)
	}
	reader.RegisterDecompressor(zip.Deflate, flate.NewReader)

	return &Handle{
		reader: reader,
		size:   int64(len(data)),
		digest: blake3.Sum256(data),
	}, nil
}

// Open reads a zip file from disk into memory.
func Open(path string) (*Handle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", path, err)
	}
	return FromBytes(data)
}

// Size returns the archive size in bytes.
func (h *Handle) Size() int64 { return h.size }

// Digest returns the hex BLAKE3-256 digest of the archive bytes. Two handles
// with the same digest hold the same template.
func (h *Handle) Digest() string { return hex.EncodeToString(h.digest[:]) }

// Files returns the non-directory entries in archive order.
func (h *Handle) Files() []*zip.File {
	files := make([]*zip.File, 0, len(h.reader.File))
	for _, f := range h.reader.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		files = append(files, f)
	}
	return files
}

// ReadFile returns the contents of the named entry.
func (h *Handle) ReadFile(name string) ([]byte, error) {
	for _, f := range h.reader.File {
		if f.Name == name {
			return readEntry(f)
		}
	}
	return nil, fmt.Errorf("entry %s: %w", name, os.ErrNotExist)
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening zip entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading zip entry %s: %w", f.Name, err)
	}
	return data, nil
}
