package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/docservice"
)

// DefaultLimit is the page size used when the client does not supply one.
const DefaultLimit = 10

// Handler holds API route handlers.
type Handler struct {
	svc *docservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *docservice.Service) *Handler {
	return &Handler{svc: svc}
}

// queryInt parses a non-negative integer query parameter, falling back to
// def when absent. The ok result is false for negative or malformed values.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Search handles GET /api/search.
//
//	@Summary		Ranked full-text line search over the corpus
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Page size (default 10)"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, ok := queryInt(r, "limit", DefaultLimit)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("limit must be a non-negative integer"))
		return
	}
	offset, ok := queryInt(r, "offset", 0)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("offset must be a non-negative integer"))
		return
	}

	resp := h.svc.Search(r.Context(), q, limit, offset)
	writeJSON(w, http.StatusOK, resp)
}

// Stats handles GET /api/stats.
//
//	@Summary		Corpus statistics
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	Stats
//	@Security		BearerAuth
//	@Router			/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Stats(r.Context()))
}

// Status handles GET /api/status.
//
//	@Summary		Corpus status and health
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	Status
//	@Security		BearerAuth
//	@Router			/status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status(r.Context()))
}

// Maintenance handles POST /api/maintenance.
//
// Unknown tasks are reported inside the payload with success=false, not as
// an HTTP error.
//
//	@Summary		Run a maintenance task
//	@Tags			maintenance
//	@Accept			json
//	@Produce		json
//	@Param			body	body		MaintenanceRequest	true	"Task to run"
//	@Success		200		{object}	MaintenanceResult
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/maintenance [post]
func (h *Handler) Maintenance(w http.ResponseWriter, r *http.Request) {
	var req MaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Task == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("task is required"))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.RunMaintenance(r.Context(), req.Task))
}

// ListDocuments handles GET /api/documents.
//
//	@Summary		List cached documents
//	@Tags			documents
//	@Produce		json
//	@Success		200	{object}	DocumentListResponse
//	@Security		BearerAuth
//	@Router			/documents [get]
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := h.svc.ListDocuments(r.Context())
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: docs, Total: len(docs)})
}

// GetDocument handles GET /api/documents/*.
//
//	@Summary		Fetch one document with its content
//	@Tags			documents
//	@Produce		json
//	@Param			path	path		string	true	"Document path relative to the corpus root"
//	@Success		200		{object}	DocumentContentResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{path} [get]
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if rel == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("document path is required"))
		return
	}

	info, content, err := h.svc.GetDocument(r.Context(), rel)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("document not found"))
			return
		}
		slog.Error("get document failed", slog.String("path", rel), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, DocumentContentResponse{Document: info, Content: string(content)})
}

// AddDocument handles POST /api/documents.
//
//	@Summary		Ingest a new document into the corpus
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AddDocumentRequest	true	"Document to add"
//	@Success		201		{object}	models.DocumentInfo
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents [post]
func (h *Handler) AddDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req AddDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Path == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path and content are required"))
		return
	}

	info, err := h.svc.AddDocument(r.Context(), req.Path, []byte(req.Content))
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrAlreadyExists):
			writeJSON(w, http.StatusConflict, errorBody("document already exists"))
		case errors.Is(err, apperr.ErrInvalidPath):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		default:
			slog.Error("add document failed", slog.String("path", req.Path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, info)
}
