package galaxy

import (
	"io"
	"log/slog"
	"math"
	"testing"

	apperrors "starforge/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultConfig() Config {
	return Config{
		Seed:         20250222,
		NumStars:     1000,
		GalaxyRadius: 1500,
		ArmStrength:  1,
		ArmCount:     5,
		NoiseScale:   1,
	}
}

func TestGeneratePositions_CountAndFinite(t *testing.T) {
	g := NewGenerator(testLogger())

	for _, seed := range []int64{0, 1, 42, 20250222, -7} {
		cfg := defaultConfig()
		cfg.Seed = seed

		positions, err := g.GeneratePositions(cfg)
		require.NoError(t, err)
		require.Len(t, positions, cfg.NumStars)

		for _, p := range positions {
			require.False(t, math.IsNaN(p.X) || math.IsInf(p.X, 0), "seed %d x=%v", seed, p.X)
			require.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0), "seed %d y=%v", seed, p.Y)
		}
	}
}

func TestGeneratePositions_Reproducible(t *testing.T) {
	g := NewGenerator(testLogger())
	cfg := defaultConfig()

	first, err := g.GeneratePositions(cfg)
	require.NoError(t, err)
	second, err := g.GeneratePositions(cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	cfg.Seed++
	third, err := g.GeneratePositions(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestGeneratePositions_RadialBounds(t *testing.T) {
	g := NewGenerator(testLogger())
	cfg := defaultConfig()
	cfg.ArmStrength = 0

	positions, err := g.GeneratePositions(cfg)
	require.NoError(t, err)

	// r ranges over [R, R*e^π); three octaves of noise stay within ±1.3
	minR := 0.35 * cfg.GalaxyRadius
	maxR := 1.65 * cfg.GalaxyRadius * math.Exp(math.Pi)
	for _, p := range positions {
		d := math.Hypot(p.X, p.Y)
		assert.GreaterOrEqual(t, d, minR-1e-6)
		assert.LessOrEqual(t, d, maxR+1e-6)
	}
}

func TestGeneratePositions_Empty(t *testing.T) {
	g := NewGenerator(testLogger())
	cfg := defaultConfig()
	cfg.NumStars = 0

	positions, err := g.GeneratePositions(cfg)
	require.NoError(t, err)
	assert.Empty(t, positions)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative stars", func(c *Config) { c.NumStars = -1 }},
		{"zero radius", func(c *Config) { c.GalaxyRadius = 0 }},
		{"infinite radius", func(c *Config) { c.GalaxyRadius = math.Inf(1) }},
		{"overflowing radius", func(c *Config) { c.GalaxyRadius = 1e307 }},
		{"overflowing noise input", func(c *Config) { c.NoiseScale = 1e300 }},
		{"nan arm strength", func(c *Config) { c.ArmStrength = math.NaN() }},
		{"no arms", func(c *Config) { c.ArmCount = 0 }},
		{"nan noise scale", func(c *Config) { c.NoiseScale = math.NaN() }},
	}

	g := NewGenerator(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)

			_, err := g.GeneratePositions(cfg)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrorTypeConfiguration, apperrors.GetType(err))
		})
	}
}

func TestConfigValidate_NamesOverflowingField(t *testing.T) {
	cfg := defaultConfig()
	cfg.NumStars = 200
	cfg.GalaxyRadius = 1e307

	positions, err := NewGenerator(testLogger()).GeneratePositions(cfg)
	require.Error(t, err)
	assert.Nil(t, positions)
	assert.Contains(t, err.Error(), "galaxy_radius")

	cfg = defaultConfig()
	cfg.NoiseScale = -1e300
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "noise_scale")
}

func TestGeneratePositions_LargeRadiusStaysFinite(t *testing.T) {
	cfg := defaultConfig()
	cfg.NumStars = 200
	cfg.GalaxyRadius = 1e12

	positions, err := NewGenerator(testLogger()).GeneratePositions(cfg)
	require.NoError(t, err)
	for _, p := range positions {
		require.False(t, math.IsNaN(p.X) || math.IsInf(p.X, 0))
		require.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0))
	}
}
