package server

import (
	"log/slog"
	"net/http"

	"starforge/internal/events"
	"starforge/internal/middleware"
	serverHandlers "starforge/internal/server/handlers"
	"starforge/internal/shared/database"
	spatialHandlers "starforge/internal/spatial/handlers"
	"starforge/internal/universe"
	universeHandlers "starforge/internal/universe/handlers"
)

type Routes struct {
	db            *database.DB
	catalog       *universe.Catalog
	service       *universe.Service
	hub           *events.Hub
	authenticator *middleware.Authenticator
	logger        *slog.Logger
}

func NewRoutes(db *database.DB, catalog *universe.Catalog, service *universe.Service, hub *events.Hub, authenticator *middleware.Authenticator, logger *slog.Logger) *Routes {
	return &Routes{
		db:            db,
		catalog:       catalog,
		service:       service,
		hub:           hub,
		authenticator: authenticator,
		logger:        logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.catalog)
	universeHandler := universeHandlers.NewUniverseHandler(r.catalog, r.service)
	spatialHandler := spatialHandlers.NewSpatialHandler(r.catalog)

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.HandleFunc("/api/universe", universeHandler.GetSummary)
	mux.HandleFunc("/api/stars", universeHandler.ListStars)
	mux.HandleFunc("/api/stars/{id}", universeHandler.GetStar)
	mux.HandleFunc("/api/stars/{id}/bodies", universeHandler.GetBodies)
	mux.HandleFunc("/api/stars/{id}/layout", universeHandler.GetLayout)
	mux.HandleFunc("/api/sectors", spatialHandler.GetSectors)
	mux.HandleFunc("/api/sectors/{x}/{y}", spatialHandler.GetSector)

	// Live updates
	mux.Handle("/ws", r.hub)

	// Admin-only endpoints
	mux.Handle("/api/universe/regenerate", r.authenticator.RequireAdmin(http.HandlerFunc(universeHandler.Regenerate)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/universe", "/api/stars", "/api/stars/{id}", "/api/stars/{id}/bodies", "/api/stars/{id}/layout", "/api/sectors", "/api/sectors/{x}/{y}"},
		"websocket_endpoints", []string{"/ws"},
		"admin_endpoints", []string{"/api/universe/regenerate"},
	)

	return mux
}
