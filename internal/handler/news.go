package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newsdesk/newsdesk/internal/auth"
	"github.com/newsdesk/newsdesk/internal/handler/dto"
	"github.com/newsdesk/newsdesk/internal/service"
)

// NewsHandler handles HTTP requests for article operations.
type NewsHandler struct {
	svc    *service.NewsService
	logger *slog.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(svc *service.NewsService, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/news.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing credentials")
		return
	}

	var req dto.CreateNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	news, err := h.svc.Create(r.Context(), service.CreateNewsInput{
		Title:   req.Title,
		Body:    req.Body,
		OwnerID: authCtx.UserID,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("news_created",
		"news_id", news.ID,
		"owner_id", news.OwnerID,
	)

	writeJSON(w, http.StatusCreated, dto.ToNewsResponse(news))
}

// Get handles GET /api/v1/news/{id}. Public; each read records a view.
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Article ID is required")
		return
	}

	news, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNewsResponse(news))
}

// List handles GET /api/v1/news. Public.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNewsListResponse(items))
}

// Mine handles GET /api/v1/news/mine.
func (h *NewsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing credentials")
		return
	}

	items, err := h.svc.ListByOwner(r.Context(), authCtx.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNewsListResponse(items))
}

// Update handles PATCH /api/v1/news/{id}.
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing credentials")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Article ID is required")
		return
	}

	var req dto.UpdateNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	news, err := h.svc.Update(r.Context(), service.UpdateNewsInput{
		ID:          id,
		RequesterID: authCtx.UserID,
		Title:       req.Title,
		Body:        req.Body,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("news_updated",
		"news_id", news.ID,
	)

	writeJSON(w, http.StatusOK, dto.ToNewsResponse(news))
}

// Delete handles DELETE /api/v1/news/{id}.
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing credentials")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Article ID is required")
		return
	}

	if err := h.svc.Delete(r.Context(), id, authCtx.UserID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("news_deleted", "news_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses. An article the
// requester does not own reports the same not-found as a missing one.
func (h *NewsHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNewsNotFound):
		h.writeError(w, http.StatusNotFound, "NEWS_NOT_FOUND", "Article not found")
	case errors.Is(err, service.ErrInvalidInput):
		h.writeError(w, http.StatusBadRequest, "INVALID_INPUT", "Invalid article data")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *NewsHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
