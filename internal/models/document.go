// Package models defines the domain types for Raido.
package models

import "time"

// Document is one eligible file in the corpus, identified by absolute path.
type Document struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// DocumentInfo describes a document with its lazily resolved size.
// Checksum is only populated for freshly ingested documents.
type DocumentInfo struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Checksum string    `json:"checksum,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

// Hit is one matching line within a document.
//
// ID is derived from the document's position in the cache at search time and
// the 1-based line number; it is not stable across cache refreshes.
// IndexedAt is the wall-clock time of the match, not the file's mtime.
type Hit struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Score      float64   `json:"score"`
	Path       string    `json:"path"`
	LineNumber int64     `json:"line_number"`
	IndexedAt  time.Time `json:"indexed_at"`
}

// SearchResponse is a paginated, score-ordered window over the hits collected
// for one query.
//
// Total counts the hits collected before pagination. When Truncated is true
// the scan stopped at the early-stop threshold, so Total undercounts the true
// corpus-wide match count.
type SearchResponse struct {
	Query     string `json:"query"`
	Results   []Hit  `json:"results"`
	Total     int    `json:"total"`
	Truncated bool   `json:"truncated"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}

// Stats summarizes the current document cache and corpus size.
type Stats struct {
	TotalDocuments int       `json:"total_documents"`
	IndexSizeBytes int64     `json:"index_size_bytes"`
	LastUpdated    time.Time `json:"last_updated"`
	SearchPath     string    `json:"search_path"`
}

// Status is Stats plus a live health check of the corpus root.
type Status struct {
	IndexExists    bool      `json:"index_exists"`
	IndexHealthy   bool      `json:"index_healthy"`
	TotalDocuments int       `json:"total_documents"`
	IndexSizeBytes int64     `json:"index_size_bytes"`
	LastUpdated    time.Time `json:"last_updated"`
}

// MaintenanceResult reports the outcome of one maintenance task. It is
// ephemeral and never persisted.
type MaintenanceResult struct {
	Task       string    `json:"task"`
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	ExecutedAt time.Time `json:"executed_at"`
}
