// Package docservice exposes engine operations to the HTTP and MCP surfaces.
//
// The engine performs no internal locking, so this service is the required
// external serializer: every operation takes one mutex, making concurrent
// callers safe at the cost of running engine work one at a time.
package docservice

import (
	"context"
	"sync"

	"github.com/starford/raido/internal/engine"
	"github.com/starford/raido/internal/models"
)

// EventFunc receives engine lifecycle notifications ("document" with the
// added path, "maintenance" with the task name). May be nil.
type EventFunc func(kind, detail string)

// Service serializes access to one engine instance.
type Service struct {
	mu     sync.Mutex
	eng    *engine.Engine
	notify EventFunc
}

// NewService creates a new document service. notify may be nil.
func NewService(eng *engine.Engine, notify EventFunc) *Service {
	return &Service{eng: eng, notify: notify}
}

// Search runs a ranked, paginated query over the corpus.
func (s *Service) Search(_ context.Context, query string, limit, offset int) models.SearchResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Search(query, limit, offset)
}

// Stats returns corpus aggregates.
func (s *Service) Stats(_ context.Context) models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Stats()
}

// Status returns corpus aggregates plus a live health check.
func (s *Service) Status(_ context.Context) models.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Status()
}

// RunMaintenance executes a named maintenance task.
func (s *Service) RunMaintenance(_ context.Context, task string) models.MaintenanceResult {
	s.mu.Lock()
	result := s.eng.RunMaintenance(task)
	s.mu.Unlock()

	if s.notify != nil && result.Success {
		s.notify("maintenance", task)
	}
	return result
}

// AddDocument ingests a new document into the corpus.
func (s *Service) AddDocument(_ context.Context, path string, content []byte) (models.DocumentInfo, error) {
	s.mu.Lock()
	info, err := s.eng.AddDocument(path, content)
	s.mu.Unlock()

	if err != nil {
		return models.DocumentInfo{}, err
	}
	if s.notify != nil {
		s.notify("document", info.Path)
	}
	return info, nil
}

// GetDocument returns one cached document with its content.
func (s *Service) GetDocument(_ context.Context, path string) (models.DocumentInfo, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.GetDocument(path)
}

// ListDocuments returns the cached documents with best-effort sizes.
func (s *Service) ListDocuments(_ context.Context) []models.DocumentInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Documents()
}
