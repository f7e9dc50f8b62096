package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	apperrors "starforge/internal/shared/errors"
	"starforge/internal/shared/response"
	"starforge/internal/universe"

	"github.com/google/uuid"
)

type UniverseHandler struct {
	catalog *universe.Catalog
	service *universe.Service
}

func NewUniverseHandler(catalog *universe.Catalog, service *universe.Service) *UniverseHandler {
	return &UniverseHandler{
		catalog: catalog,
		service: service,
	}
}

type RegenerateRequest struct {
	Seed *int64 `json:"seed"`
}

// GetSummary handles GET /api/universe
func (h *UniverseHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_universe_summary")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, apperrors.MethodNotAllowed(r.Method))
		return
	}

	u, err := h.catalog.Current()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, u.Summary())
}

// ListStars handles GET /api/stars?spectral_type=G
func (h *UniverseHandler) ListStars(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_stars")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, apperrors.MethodNotAllowed(r.Method))
		return
	}

	stars, err := h.catalog.Stars(r.URL.Query().Get("spectral_type"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, stars)
}

// GetStar handles GET /api/stars/{id}
func (h *UniverseHandler) GetStar(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_star")

	id, ok := h.starID(w, r, logger)
	if !ok {
		return
	}

	entry, err := h.catalog.Star(id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, entry)
}

// GetBodies handles GET /api/stars/{id}/bodies
func (h *UniverseHandler) GetBodies(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_bodies")

	id, ok := h.starID(w, r, logger)
	if !ok {
		return
	}

	system, err := h.catalog.System(id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, system.Bodies)
}

// GetLayout handles GET /api/stars/{id}/layout
func (h *UniverseHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_layout")

	id, ok := h.starID(w, r, logger)
	if !ok {
		return
	}

	layout, err := h.catalog.Layout(id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, layout)
}

// Regenerate handles POST /api/universe/regenerate - Admin only
func (h *UniverseHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "regenerate_universe")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, apperrors.MethodNotAllowed(r.Method))
		return
	}

	var req RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, r, logger, apperrors.WrapValidation("invalid request body", err))
		return
	}

	logger.Info("Regenerating universe", "seed_override", req.Seed != nil)

	u, err := h.service.Regenerate(r.Context(), req.Seed)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, u.Summary())
}

func (h *UniverseHandler) starID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	if r.Method != http.MethodGet {
		response.Error(w, r, logger, apperrors.MethodNotAllowed(r.Method))
		return uuid.Nil, false
	}

	idStr := r.PathValue("id")
	if idStr == "" {
		response.Error(w, r, logger, apperrors.Validation("star ID is required"))
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Error(w, r, logger, apperrors.WrapValidation("invalid star ID format", err))
		return uuid.Nil, false
	}
	return id, true
}
