package universe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"starforge/internal/galaxy"
	"starforge/internal/planet"
	"starforge/internal/shared/errors"
	"starforge/internal/shared/random"
	"starforge/internal/star"

	"golang.org/x/sync/errgroup"
)

// Notifier is told about every universe the service publishes
type Notifier interface {
	UniversePublished(summary Summary)
}

type Service struct {
	defaults Config
	galaxy   *galaxy.Generator
	catalog  *Catalog
	repo     *Repository
	cache    *SnapshotCache
	notifier Notifier
	building sync.Mutex
	logger   *slog.Logger
}

// NewService wires the generation pipeline. repo, cache and notifier may be
// nil when the matching backend is disabled.
func NewService(defaults Config, catalog *Catalog, repo *Repository, cache *SnapshotCache, notifier Notifier, logger *slog.Logger) *Service {
	logger.Debug("Initializing universe service")

	return &Service{
		defaults: defaults,
		galaxy:   galaxy.NewGenerator(logger),
		catalog:  catalog,
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
	}
}

// Generate runs the whole pipeline: galaxy positions, one star per
// position, then a planetary system per star. The result is not published.
func (s *Service) Generate(ctx context.Context, cfg Config) (*Universe, error) {
	logger := s.logger.With(
		"component", "universe_service",
		"operation", "generate",
		"seed", cfg.Galaxy.Seed,
		"num_stars", cfg.Galaxy.NumStars,
	)

	if err := cfg.Validate(); err != nil {
		logger.Warn("Rejected generation configuration", "error", err)
		return nil, err
	}

	logger.Info("Starting universe generation", "workers", cfg.Workers)
	start := time.Now()

	positions, err := s.galaxy.GeneratePositions(cfg.Galaxy)
	if err != nil {
		return nil, err
	}

	stars, err := sampleStars(ctx, cfg)
	if err != nil {
		return nil, err
	}

	systems := make([]System, len(stars))
	for i := range stars {
		systems[i] = System{Star: stars[i], Position: positions[i]}
	}

	if err := s.generateSystems(ctx, cfg, systems); err != nil {
		logger.Error("Failed to generate planetary systems", "error", err)
		return nil, err
	}

	u := &Universe{
		ID:        random.Derive(cfg.Galaxy.Seed, "universe", 0).UUID(),
		Seed:      cfg.Galaxy.Seed,
		Config:    cfg,
		Systems:   systems,
		CreatedAt: time.Now().UTC(),
	}
	u.buildIndex()

	logger.Info("Universe generation completed",
		"universe_id", u.ID,
		"stars", len(u.Systems),
		"bodies", u.BodyCount(),
		"duration", time.Since(start),
	)
	return u, nil
}

func sampleStars(ctx context.Context, cfg Config) ([]star.Star, error) {
	stars := make([]star.Star, 0, cfg.Galaxy.NumStars)
	for i := 0; i < cfg.Galaxy.NumStars; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		gen := star.NewGenerator(random.Derive(cfg.Galaxy.Seed, "star", i))
		stars = append(stars, gen.GenerateNamed(starName(cfg.StarNames, i)))
	}
	return stars, nil
}

// starName cycles through names, numbering every lap after the first
func starName(names []string, i int) string {
	name := names[i%len(names)]
	if lap := i / len(names); lap > 0 {
		return fmt.Sprintf("%s %d", name, lap+1)
	}
	return name
}

func (s *Service) generateSystems(ctx context.Context, cfg Config, systems []System) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	var mu sync.Mutex
	for i := range systems {
		starID := systems[i].Star.ID
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			gen := planet.NewGenerator(random.Derive(cfg.Galaxy.Seed, "system", i), s.logger)
			bodies, err := gen.GenerateSystem(starID, cfg.System)
			if err != nil {
				return fmt.Errorf("failed to generate system for star %d: %w", i, err)
			}

			mu.Lock()
			systems[i].Bodies = bodies
			mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// Regenerate builds a universe from the service defaults, optionally with a
// different seed, and publishes it. Only one build runs at a time.
func (s *Service) Regenerate(ctx context.Context, seed *int64) (*Universe, error) {
	cfg := s.defaults
	if seed != nil {
		cfg.Galaxy.Seed = *seed
	}

	if !s.building.TryLock() {
		return nil, errors.Unavailable("a universe is already being generated")
	}
	defer s.building.Unlock()

	logger := s.logger.With("component", "universe_service", "operation", "regenerate", "seed", cfg.Galaxy.Seed)

	if u, ok := s.cache.Load(ctx, cfg); ok {
		logger.Info("Universe restored from snapshot cache", "universe_id", u.ID)
		s.publish(u)
		return u, nil
	}

	u, err := s.Generate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Save(ctx, u); err != nil {
		logger.Warn("Failed to cache universe snapshot", "error", err)
	}

	if s.repo != nil {
		if _, err := s.repo.Export(ctx, u); err != nil {
			logger.Error("Failed to export universe catalog", "error", err)
		}
	}

	s.publish(u)
	return u, nil
}

func (s *Service) publish(u *Universe) {
	s.catalog.Publish(u)
	if s.notifier != nil {
		s.notifier.UniversePublished(u.Summary())
	}
}
