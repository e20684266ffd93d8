// Package engine implements the search engine core: the document cache,
// the streaming query executor, the scoring heuristic, and the maintenance
// and stats operations.
//
// An Engine performs no internal locking. All operations on one instance
// must be invoked sequentially by a single caller context; shared use
// requires an external serializer (see docservice).
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/checksum"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/storage"
)

// Engine holds the document cache over a corpus root.
type Engine struct {
	store  storage.Provider
	logger *slog.Logger
	ext    string // accepted extension, without leading dot

	cache       []models.Document
	lastScanned time.Time
}

// New creates an Engine and performs the initial cache refresh. The corpus
// root has already been created by the storage provider; construction itself
// cannot fail beyond that.
func New(store storage.Provider, ext string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{store: store, logger: logger, ext: ext}
	e.Refresh()
	return e
}

// Refresh rebuilds the document cache from a full walk of the corpus root.
// The walk is best-effort and never fails; last_scanned is updated
// unconditionally, even when the result is empty.
func (e *Engine) Refresh() {
	e.cache = e.store.List(e.ext)
	e.lastScanned = time.Now().UTC()
	e.logger.Debug("cache refreshed",
		slog.Int("documents", len(e.cache)),
		slog.String("root", e.store.Root()))
}

// Documents returns the cached documents with lazily resolved sizes.
// A size that cannot be resolved is reported as zero.
func (e *Engine) Documents() []models.DocumentInfo {
	out := make([]models.DocumentInfo, len(e.cache))
	for i, doc := range e.cache {
		size, err := e.store.Size(doc.Path)
		if err != nil {
			size = 0
		}
		out[i] = models.DocumentInfo{Path: doc.Path, Name: doc.Name, Size: size}
	}
	return out
}

// GetDocument returns the cached document at rel (relative to the corpus
// root) together with its content. A path not in the cache, or a cached file
// that has since disappeared, yields ErrNotFound.
func (e *Engine) GetDocument(rel string) (models.DocumentInfo, []byte, error) {
	abs := filepath.Join(e.store.Root(), filepath.Clean(rel))
	for _, doc := range e.cache {
		if doc.Path != abs {
			continue
		}
		rc, err := e.store.Open(doc.Path)
		if err != nil {
			return models.DocumentInfo{}, nil, fmt.Errorf("engine: open %s: %w", rel, apperr.ErrNotFound)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			return models.DocumentInfo{}, nil, fmt.Errorf("engine: read %s: %w", rel, err)
		}
		return models.DocumentInfo{
			Path: doc.Path,
			Name: doc.Name,
			Size: int64(len(content)),
		}, content, nil
	}
	return models.DocumentInfo{}, nil, fmt.Errorf("engine: document %s: %w", rel, apperr.ErrNotFound)
}

// AddDocument atomically writes a new document at rel (relative to the corpus
// root) and refreshes the cache. The path must carry the accepted extension.
func (e *Engine) AddDocument(rel string, content []byte) (models.DocumentInfo, error) {
	if !strings.EqualFold(strings.TrimPrefix(filepath.Ext(rel), "."), e.ext) {
		return models.DocumentInfo{}, fmt.Errorf("engine: document must have .%s extension: %w", e.ext, apperr.ErrInvalidPath)
	}
	for _, doc := range e.cache {
		if doc.Path == filepath.Join(e.store.Root(), filepath.Clean(rel)) {
			return models.DocumentInfo{}, apperr.ErrAlreadyExists
		}
	}

	abs, err := e.store.Write(rel, content)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return models.DocumentInfo{}, apperr.ErrAlreadyExists
		}
		return models.DocumentInfo{}, err
	}
	e.Refresh()

	return models.DocumentInfo{
		Path:     abs,
		Name:     filepath.Base(abs),
		Size:     int64(len(content)),
		Checksum: checksum.Sum(content),
		AddedAt:  time.Now().UTC(),
	}, nil
}

// Stats aggregates size and count facts over the current cache. Per-document
// metadata failures contribute zero and never fail the aggregate.
func (e *Engine) Stats() models.Stats {
	return models.Stats{
		TotalDocuments: len(e.cache),
		IndexSizeBytes: e.totalSize(),
		LastUpdated:    e.lastScanned,
		SearchPath:     e.store.Root(),
	}
}

// Status is Stats plus a live health check of the corpus root, independent
// of cache staleness.
func (e *Engine) Status() models.Status {
	healthy := e.store.Healthy()
	return models.Status{
		IndexExists:    healthy,
		IndexHealthy:   healthy,
		TotalDocuments: len(e.cache),
		IndexSizeBytes: e.totalSize(),
		LastUpdated:    e.lastScanned,
	}
}

func (e *Engine) totalSize() int64 {
	var total int64
	for _, doc := range e.cache {
		size, err := e.store.Size(doc.Path)
		if err != nil {
			continue
		}
		total += size
	}
	return total
}
