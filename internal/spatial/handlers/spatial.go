package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"starforge/internal/shared/errors"
	"starforge/internal/shared/response"
	"starforge/internal/spatial"
	"starforge/internal/universe"
)

type SectorResponse struct {
	Sector spatial.Sector       `json:"sector"`
	Stars  []universe.StarEntry `json:"stars"`
}

type SpatialHandler struct {
	catalog *universe.Catalog
}

func NewSpatialHandler(catalog *universe.Catalog) *SpatialHandler {
	return &SpatialHandler{catalog: catalog}
}

// GetSectors handles GET /api/sectors
func (h *SpatialHandler) GetSectors(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_sectors")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	sectors, err := h.catalog.Sectors()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, sectors)
}

// GetSector handles GET /api/sectors/{x}/{y}
func (h *SpatialHandler) GetSector(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_sector")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	x, err := strconv.Atoi(r.PathValue("x"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid sector x coordinate", err))
		return
	}

	y, err := strconv.Atoi(r.PathValue("y"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid sector y coordinate", err))
		return
	}

	sector, stars, err := h.catalog.SectorStars(x, y)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, SectorResponse{Sector: sector, Stars: stars})
}
