package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/raido/internal/models"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root string // absolute path to the corpus directory
}

// NewFS creates a new FS provider rooted at the given directory, creating it
// if it does not exist. Creation failure is the only error path.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute corpus root path.
func (f *FS) Root() string {
	return f.root
}

// inRoot verifies that an absolute path lies under the corpus root.
func (f *FS) inRoot(abs string) error {
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return fmt.Errorf("storage: path escapes corpus root: %s", abs)
	}
	return nil
}

// safePath resolves a relative path against the root and rejects any result
// that escapes it (directory traversal).
func (f *FS) safePath(rel string) (string, error) {
	cleaned := filepath.Clean(rel)
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("storage: empty path")
	}
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(f.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("storage: resolve path: %w", err)
	}
	if err := f.inRoot(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// List walks the root and returns every regular file whose extension matches
// ext, case-insensitively, in discovery order. The walk is best-effort: a
// subtree or entry that cannot be read is skipped, never a failure. A missing
// root yields an empty list.
func (f *FS) List(ext string) []models.Document {
	var out []models.Document
	_ = filepath.WalkDir(f.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		name := d.Name()
		if !strings.EqualFold(strings.TrimPrefix(filepath.Ext(name), "."), ext) {
			return nil
		}
		out = append(out, models.Document{Path: p, Name: name})
		return nil
	})
	return out
}

// Open returns a reader over the file at the given absolute path.
func (f *FS) Open(path string) (io.ReadCloser, error) {
	if err := f.inRoot(path); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	return file, nil
}

// Size returns the file size in bytes.
func (f *FS) Size(path string) (int64, error) {
	if err := f.inRoot(path); err != nil {
		return 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("storage: stat %s: %w", path, err)
	}
	return info.Size(), nil
}

// Write atomically writes content: tmp file → fsync → rename.
func (f *FS) Write(rel string, content []byte) (string, error) {
	abs, err := f.safePath(rel)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".raido-tmp-*")
	if err != nil {
		return "", fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return "", fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return "", fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return abs, nil
}

// Remove deletes a file from the corpus.
func (f *FS) Remove(path string) error {
	if err := f.inRoot(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("storage: remove %s: %w", path, err)
	}
	return nil
}

// Healthy reports whether the root exists and is a directory, checked live.
func (f *FS) Healthy() bool {
	info, err := os.Stat(f.root)
	return err == nil && info.IsDir()
}
