// Package testutil provides shared test helpers for setting up corpora and engines.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/raido/internal/engine"
	"github.com/starford/raido/internal/storage"
)

// TestCorpus creates a temporary corpus directory with a storage.Provider.
func TestCorpus(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return store.Root(), store
}

// TestEngine creates an engine over a fresh temporary corpus, logging to a
// discard handler.
func TestEngine(t *testing.T) (*engine.Engine, string) {
	t.Helper()
	root, store := TestCorpus(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return engine.New(store, "txt", logger), root
}

// WriteDoc writes a document directly into the corpus directory, creating
// parent directories as needed.
func WriteDoc(t *testing.T, root, name, content string) {
	t.Helper()
	p := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
