package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// urlPrefix is the path under which stored objects are served.
const urlPrefix = "/images/"

// Local is a filesystem-backed Storage. Writes go through a temp file in
// the target directory followed by a rename, so a crashed upload never
// leaves a half-written object at its final path.
type Local struct {
	maxFileSize int // maximum number of bytes per object
	basePath    string
	baseURL     string // public origin, e.g. "http://localhost:9090"
}

// NewLocal creates a Local store rooted at basePath. baseURL is the
// public origin objects are served from, maxSize caps the object size in
// bytes.
func NewLocal(basePath, baseURL string, maxSize int) (*Local, error) {
	p, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Local{
		basePath:    p,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxFileSize: maxSize,
	}, nil
}

func (l *Local) Save(path string, contents io.Reader) (string, error) {
	fp := l.fullPath(path)
	dir := filepath.Dir(fp)

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("unable to create directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, "temp-*")
	if err != nil {
		return "", fmt.Errorf("unable to create temporary file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	// Read one byte past the cap so an oversized upload is detectable
	// instead of being silently truncated.
	written, err := io.Copy(tempFile, io.LimitReader(contents, int64(l.maxFileSize)+1))
	if err != nil {
		tempFile.Close()
		return "", fmt.Errorf("unable to write to file: %w", err)
	}

	if err = tempFile.Close(); err != nil {
		return "", fmt.Errorf("unable to close temporary file: %w", err)
	}

	if written > int64(l.maxFileSize) {
		return "", fmt.Errorf("file size exceeds maximum allowed size of %d bytes", l.maxFileSize)
	}

	if err := os.Rename(tempPath, fp); err != nil {
		return "", fmt.Errorf("unable to move temporary file to final location: %w", err)
	}

	return l.PublicURL(path), nil
}

func (l *Local) Open(path string) (*os.File, error) {
	f, err := os.Open(l.fullPath(path))
	if err != nil {
		return nil, fmt.Errorf("unable to open the file: %w", err)
	}

	return f, nil
}

func (l *Local) Delete(path string) error {
	if err := os.Remove(l.fullPath(path)); err != nil {
		return fmt.Errorf("unable to delete the file: %w", err)
	}
	return nil
}

func (l *Local) PublicURL(path string) string {
	return l.baseURL + urlPrefix + strings.TrimLeft(path, "/")
}

func (l *Local) ParseURL(url string) (string, bool) {
	path, ok := strings.CutPrefix(url, l.baseURL+urlPrefix)
	if !ok || path == "" {
		return "", false
	}
	// keep lookups inside the base directory
	if strings.Contains(path, "..") {
		return "", false
	}
	return path, true
}

// returns the absolute full path
func (l *Local) fullPath(path string) string {
	return filepath.Join(l.basePath, path)
}
