package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"starforge/internal/shared/database"
	"starforge/internal/shared/response"
	"starforge/internal/universe"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Universe  string `json:"universe"`
	Stars     int    `json:"stars"`
}

type HealthHandler struct {
	db      *database.DB
	catalog *universe.Catalog
}

func NewHealthHandler(db *database.DB, catalog *universe.Catalog) *HealthHandler {
	return &HealthHandler{db: db, catalog: catalog}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	dbStatus := "disabled"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus = "connected"
		if err := h.db.PingContext(ctx); err != nil {
			dbStatus = "disconnected"
			logger.Warn("Database ping failed", "error", err)
		}
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Database:  dbStatus,
		Universe:  "generating",
	}

	if u, err := h.catalog.Current(); err == nil {
		resp.Universe = "ready"
		resp.Stars = len(u.Systems)
	}

	response.Success(w, http.StatusOK, resp)
}
