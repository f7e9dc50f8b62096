package universe

import (
	"context"
	"fmt"
	"log/slog"

	"starforge/internal/planet"
	"starforge/internal/shared/database"

	"github.com/google/uuid"
)

// Repository exports generated universes to the catalog database. Nothing
// is ever read back into a running universe.
type Repository struct {
	db      *database.DB
	planets *planet.Repository
	logger  *slog.Logger
}

func NewRepository(db *database.DB, planets *planet.Repository, logger *slog.Logger) *Repository {
	logger.Debug("Initializing universe repository")

	return &Repository{
		db:      db,
		planets: planets,
		logger:  logger,
	}
}

// Export writes u as a new generation in one transaction and returns the
// generation id.
func (r *Repository) Export(ctx context.Context, u *Universe) (uuid.UUID, error) {
	generationID := uuid.New()
	logger := r.logger.With(
		"component", "universe_repository",
		"operation", "export",
		"universe_id", u.ID,
		"generation_id", generationID,
	)
	logger.Info("Exporting universe catalog", "stars", len(u.Systems))

	tx, err := r.db.BeginTxContext(ctx)
	if err != nil {
		logger.Error("Failed to begin export transaction", "error", err)
		return uuid.Nil, err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err.Error() != "sql: transaction has already been committed or rolled back" {
			logger.Error("Failed to rollback transaction", "error", err)
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO generations (id, universe_id, seed, star_count, body_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		generationID.String(), u.ID.String(), u.Seed, len(u.Systems), u.BodyCount(), u.CreatedAt)
	if err != nil {
		logger.Error("Failed to create generation", "error", err)
		return uuid.Nil, fmt.Errorf("failed to create generation: %w", err)
	}

	starQuery := `
		INSERT INTO stars (generation_id, id, name, spectral_type, luminosity_class, luminosity, temperature, radius, mass, x, y)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	for _, s := range u.Systems {
		st := s.Star
		_, err := tx.ExecContext(ctx, starQuery,
			generationID.String(),
			st.ID.String(),
			st.Name,
			string(st.SpectralType),
			string(st.LuminosityClass),
			st.Luminosity,
			st.Temperature,
			st.Radius,
			st.Mass,
			s.Position.X,
			s.Position.Y,
		)
		if err != nil {
			logger.Error("Failed to create star", "star_id", st.ID, "error", err)
			return uuid.Nil, fmt.Errorf("failed to create star %s: %w", st.ID, err)
		}

		if err := r.planets.CreateBodies(ctx, generationID, s.Bodies, tx); err != nil {
			return uuid.Nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit export transaction", "error", err)
		return uuid.Nil, fmt.Errorf("failed to commit export: %w", err)
	}

	logger.Info("Universe catalog exported", "bodies", u.BodyCount())
	return generationID, nil
}

// CountStars returns how many stars a generation stored
func (r *Repository) CountStars(ctx context.Context, generationID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stars WHERE generation_id = $1`, generationID.String()).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count stars", "generation_id", generationID, "error", err)
		return 0, fmt.Errorf("failed to count stars: %w", err)
	}
	return count, nil
}
