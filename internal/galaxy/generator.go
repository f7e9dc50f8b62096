package galaxy

import (
	"log/slog"
	"math"

	"starforge/internal/shared/errors"
	"starforge/internal/shared/random"

	"github.com/aquilax/go-perlin"
)

const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3

	// noise perturbs the radius by at most this factor
	maxRadiusGrowth = 2.0
	// beyond 2^53 noise coordinates have no fractional part left
	maxNoiseInput = 1 << 53
)

type Generator struct {
	logger *slog.Logger
}

func NewGenerator(logger *slog.Logger) *Generator {
	logger.Debug("Initializing galaxy generator")

	return &Generator{
		logger: logger,
	}
}

// Validate rejects parameters that would produce NaN or infinite positions
func (c Config) Validate() error {
	if c.NumStars < 0 {
		return errors.Configurationf("num_stars must not be negative, got %d", c.NumStars)
	}
	if !(c.GalaxyRadius > 0) || math.IsInf(c.GalaxyRadius, 0) {
		return errors.Configurationf("galaxy_radius must be positive and finite, got %g", c.GalaxyRadius)
	}
	// the spiral radius peaks at GalaxyRadius*e^π just before θ reaches 2π
	peak := c.GalaxyRadius * math.Exp(math.Pi)
	if math.IsInf(peak*maxRadiusGrowth, 0) {
		return errors.Configurationf("galaxy_radius %g overflows the spiral radius", c.GalaxyRadius)
	}
	if math.IsNaN(c.ArmStrength) || math.IsInf(c.ArmStrength, 0) {
		return errors.Configurationf("arm_strength must be finite, got %g", c.ArmStrength)
	}
	if c.ArmCount < 1 {
		return errors.Configurationf("arm_count must be at least 1, got %d", c.ArmCount)
	}
	if math.IsNaN(c.NoiseScale) || math.IsInf(c.NoiseScale, 0) {
		return errors.Configurationf("noise_scale must be finite, got %g", c.NoiseScale)
	}
	if math.Abs(c.NoiseScale)*peak > maxNoiseInput {
		return errors.Configurationf("noise_scale %g with galaxy_radius %g samples noise beyond %g",
			c.NoiseScale, c.GalaxyRadius, float64(maxNoiseInput))
	}
	return nil
}

// GeneratePositions places cfg.NumStars stars on a noise-perturbed
// logarithmic spiral. One noise field, seeded from cfg.Seed, is shared by
// every star of the call.
func (g *Generator) GeneratePositions(cfg Config) ([]Position, error) {
	logger := g.logger.With("component", "galaxy_generator", "operation", "generate_positions",
		"seed", cfg.Seed, "num_stars", cfg.NumStars, "arm_count", cfg.ArmCount)

	if err := cfg.Validate(); err != nil {
		logger.Warn("Rejected galaxy configuration", "error", err)
		return nil, err
	}

	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, cfg.Seed)
	src := random.Derive(cfg.Seed, "galaxy", 0)
	armStep := 2 * math.Pi / float64(cfg.ArmCount)

	positions := make([]Position, 0, cfg.NumStars)
	for i := 0; i < cfg.NumStars; i++ {
		baseAngle, err := src.Float(0, 2*math.Pi)
		if err != nil {
			return nil, err
		}
		arm, err := src.IntInclusive(0, cfg.ArmCount)
		if err != nil {
			return nil, err
		}

		r := cfg.GalaxyRadius * math.Exp(0.5*baseAngle)
		spread := cfg.ArmStrength * math.Log(r+1)
		offset := armStep * float64(arm)

		n := noise.Noise2D(cfg.NoiseScale*r*math.Cos(baseAngle), cfg.NoiseScale*r*math.Sin(baseAngle))

		finalRadius := r*(1+0.5*n) + spread
		finalAngle := baseAngle + 0.5*n + offset

		positions = append(positions, Position{
			X: finalRadius * math.Cos(finalAngle),
			Y: finalRadius * math.Sin(finalAngle),
		})
	}

	logger.Debug("Galaxy positions generated", "count", len(positions))
	return positions, nil
}
