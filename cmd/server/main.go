package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"starforge/internal/auth"
	"starforge/internal/events"
	"starforge/internal/middleware"
	"starforge/internal/planet"
	"starforge/internal/server"
	"starforge/internal/shared/config"
	"starforge/internal/shared/database"
	"starforge/internal/shared/logger"
	"starforge/internal/shared/redis"
	"starforge/internal/universe"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init()

	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting starforge server",
		"port", cfg.Server.Port,
		"environment", cfg.Server.Environment,
		"seed", cfg.Galaxy.Seed,
		"stars", cfg.Galaxy.NumStars,
	)

	db, err := database.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database", "error", err)
			}
		}()

		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	rdb, err := redis.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error("Failed to close redis", "error", err)
		}
	}()

	hub := events.NewHub([]string{cfg.Frontend.URL}, slog.Default())
	go hub.Run(ctx)

	var repo *universe.Repository
	if db != nil {
		repo = universe.NewRepository(db, planet.NewRepository(db, slog.Default()), slog.Default())
	}

	catalog := universe.NewCatalog()
	cache := universe.NewSnapshotCache(rdb.Store(), cfg.Redis.SnapshotTTL, slog.Default())
	service := universe.NewService(universe.ConfigFromSettings(cfg), catalog, repo, cache, hub, slog.Default())

	// Generate in the background so health checks answer while a large
	// galaxy is still being built.
	go func() {
		if _, err := service.Regenerate(ctx, nil); err != nil {
			log.Error("Initial universe generation failed", "error", err)
		}
	}()

	tokens := auth.NewTokenService(cfg.Auth, slog.Default())
	routes := server.NewRoutes(db, catalog, service, hub, middleware.NewAuthenticator(tokens), slog.Default())
	cors := middleware.NewCORS(cfg.Frontend)
	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimit)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      cors.Middleware(limiter.Middleware(routes.Setup())),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", "addr", srv.Addr, "url", cfg.Server.URL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
