package api

import "github.com/starford/raido/internal/models"

// AddDocumentRequest is the request body for ingesting a document.
type AddDocumentRequest struct {
	Path    string `json:"path" example:"logs/app.txt" validate:"required"`
	Content string `json:"content" example:"line one\nline two" validate:"required"`
}

// MaintenanceRequest is the request body for running a maintenance task.
type MaintenanceRequest struct {
	Task string `json:"task" example:"cleanup" validate:"required"`
}

// SearchResponse is the search payload (aliased from the domain layer).
type SearchResponse = models.SearchResponse

// Hit is a single search hit (aliased from the domain layer).
type Hit = models.Hit

// Stats is the corpus stats payload (aliased from the domain layer).
type Stats = models.Stats

// Status is the corpus status payload (aliased from the domain layer).
type Status = models.Status

// MaintenanceResult is the maintenance outcome payload (aliased from the domain layer).
type MaintenanceResult = models.MaintenanceResult

// DocumentContentResponse wraps a single document together with its content.
type DocumentContentResponse struct {
	Document models.DocumentInfo `json:"document" validate:"required"`
	Content  string              `json:"content" validate:"required"`
}

// DocumentListResponse wraps document listings.
type DocumentListResponse struct {
	Documents []models.DocumentInfo `json:"documents" validate:"required"`
	Total     int                   `json:"total" example:"42" validate:"required"`
}
