package planet

import (
	"context"
	"fmt"
	"log/slog"

	"starforge/internal/shared/database"

	"github.com/google/uuid"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing planet repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) getExecutor(tx *database.Tx) database.Executor {
	if tx != nil {
		return tx
	}
	return r.db
}

// CreateBodies stores the bodies of one system under a generation
func (r *Repository) CreateBodies(ctx context.Context, generationID uuid.UUID, bodies []Body, tx *database.Tx) error {
	exec := r.getExecutor(tx)

	logger := r.logger.With(
		"component", "planet_repository",
		"operation", "create_bodies",
		"generation_id", generationID,
		"count", len(bodies),
	)
	logger.Debug("Creating bodies")

	query := `
		INSERT INTO bodies (generation_id, id, system_id, mass, radius, type, orbit_radius, orbit_position, orbit_period, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for _, b := range bodies {
		var parentID any
		if b.Orbit.Parent != nil {
			parentID = b.Orbit.Parent.String()
		}

		_, err := exec.ExecContext(ctx, query,
			generationID.String(),
			b.ID.String(),
			b.SystemID.String(),
			b.Mass,
			b.Radius,
			string(b.Type),
			b.Orbit.Radius,
			b.Orbit.Position,
			b.Orbit.Period,
			parentID,
		)
		if err != nil {
			logger.Error("Failed to create body", "body_id", b.ID, "error", err)
			return fmt.Errorf("failed to create body %s: %w", b.ID, err)
		}
	}

	logger.Debug("Bodies created successfully")
	return nil
}

// CountByGeneration returns how many bodies a generation stored
func (r *Repository) CountByGeneration(ctx context.Context, generationID uuid.UUID) (int, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "count_by_generation", "generation_id", generationID)

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bodies WHERE generation_id = $1`, generationID.String()).Scan(&count)
	if err != nil {
		logger.Error("Failed to count bodies", "error", err)
		return 0, fmt.Errorf("failed to count bodies: %w", err)
	}
	return count, nil
}
