// Package storage defines the corpus file-system abstraction.
package storage

import (
	"io"

	"github.com/starford/raido/internal/models"
)

// Provider is the interface for corpus file operations. List, Open, Size and
// Remove work with absolute paths under the corpus root; Write takes a path
// relative to the root.
type Provider interface {
	// Root returns the absolute path of the corpus root directory.
	Root() string
	// List walks the root and returns every regular file whose extension
	// case-insensitively matches ext (without leading dot), in discovery
	// order. Entries that cannot be inspected are skipped; List itself
	// never fails because of them.
	List(ext string) []models.Document
	// Open returns a reader over the file at the given absolute path.
	Open(path string) (io.ReadCloser, error)
	// Size returns the size in bytes of the file at the given absolute path.
	Size(path string) (int64, error)
	// Write atomically writes content to rel (relative to the root).
	// It returns the resulting absolute path.
	Write(rel string, content []byte) (string, error)
	// Remove deletes the file at the given absolute path.
	Remove(path string) error
	// Healthy reports whether the root currently exists and is a directory.
	Healthy() bool
}
