package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func tempCorpus(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestNewFSCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "corpus")
	fs, err := NewFS(root)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	info, err := os.Stat(fs.Root())
	if err != nil || !info.IsDir() {
		t.Errorf("root not created: %v", err)
	}

	// Idempotent on an existing directory.
	if _, err := NewFS(root); err != nil {
		t.Errorf("NewFS on existing root: %v", err)
	}
}

func TestWriteAndOpen(t *testing.T) {
	s := tempCorpus(t)
	abs, err := s.Write("doc.txt", []byte("hello\nworld\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	r, err := s.Open(abs)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	got, _ := io.ReadAll(r)
	if string(got) != "hello\nworld\n" {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempCorpus(t)
	abs, err := s.Write("a/b/c.txt", []byte("deep"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(abs); err != nil {
		t.Errorf("stat after write: %v", err)
	}
}

func TestListFiltersByExtension(t *testing.T) {
	s := tempCorpus(t)
	_, _ = s.Write("a.txt", []byte("a"))
	_, _ = s.Write("sub/b.TXT", []byte("b"))
	_, _ = s.Write("c.md", []byte("not txt"))
	_, _ = s.Write("sub/deep/d.log", []byte("not txt either"))

	docs := s.List("txt")
	if len(docs) != 2 {
		t.Fatalf("len = %d, want 2", len(docs))
	}
	for _, d := range docs {
		if !filepath.IsAbs(d.Path) {
			t.Errorf("path not absolute: %q", d.Path)
		}
	}
}

func TestListMissingRoot(t *testing.T) {
	s := tempCorpus(t)
	if err := os.RemoveAll(s.Root()); err != nil {
		t.Fatal(err)
	}
	if docs := s.List("txt"); len(docs) != 0 {
		t.Errorf("expected empty list for missing root, got %d", len(docs))
	}
}

func TestRemove(t *testing.T) {
	s := tempCorpus(t)
	abs, _ := s.Write("del.txt", []byte("bye"))
	if err := s.Remove(abs); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Open(abs); err == nil {
		t.Error("expected error opening removed file")
	}
}

func TestSize(t *testing.T) {
	s := tempCorpus(t)
	abs, _ := s.Write("sized.txt", []byte("12345"))
	n, err := s.Size(abs)
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if n != 5 {
		t.Errorf("size = %d, want 5", n)
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempCorpus(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.txt",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
	if _, err := s.Open("/etc/passwd"); err == nil {
		t.Error("expected error opening path outside root")
	}
	if err := s.Remove("/etc/passwd"); err == nil {
		t.Error("expected error removing path outside root")
	}
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	s := tempCorpus(t)
	_, _ = s.Write("atomic.txt", []byte("original"))
	if _, err := s.Write("atomic.txt", []byte("updated")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(s.Root(), ".raido-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestHealthy(t *testing.T) {
	s := tempCorpus(t)
	if !s.Healthy() {
		t.Error("fresh root should be healthy")
	}
	_ = os.RemoveAll(s.Root())
	if s.Healthy() {
		t.Error("removed root should be unhealthy")
	}
}
