package planet

import (
	"io"
	"log/slog"
	"math"
	"testing"

	apperrors "starforge/internal/shared/errors"
	"starforge/internal/shared/random"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testGenerator(index int) *Generator {
	return NewGenerator(random.Derive(20250222, "system", index), testLogger())
}

func defaultConfig() SystemConfig {
	return SystemConfig{
		MinBodies:        5,
		MaxBodies:        20,
		LogMeanMass:      0.1,
		LogStdMass:       0.5,
		RocheLimitFactor: 1.2,
	}
}

func byID(bodies []Body) map[uuid.UUID]Body {
	m := make(map[uuid.UUID]Body, len(bodies))
	for _, b := range bodies {
		m[b.ID] = b
	}
	return m
}

func TestGenerateSystem_Properties(t *testing.T) {
	cfg := defaultConfig()

	for i := 0; i < 200; i++ {
		systemID := uuid.New()
		bodies, err := testGenerator(i).GenerateSystem(systemID, cfg)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(bodies), cfg.MinBodies)
		require.LessOrEqual(t, len(bodies), cfg.MaxBodies)

		ids := byID(bodies)
		require.Len(t, ids, len(bodies), "body ids are unique")

		for k, b := range bodies {
			if k > 0 {
				require.GreaterOrEqual(t, bodies[k-1].Mass, b.Mass, "bodies stay sorted by descending mass")
			}
			require.Equal(t, systemID, b.SystemID)
			require.Greater(t, b.Mass, 0.0)
			require.Greater(t, b.Radius, 0.0)
			require.True(t, b.Type.Valid())
			require.Zero(t, b.Orbit.Period)

			if !b.Orbit.HasParent() {
				assert.Equal(t, classify(b.Mass), b.Type)
				assert.GreaterOrEqual(t, b.Orbit.Radius, minOrbitAU*AstronomicalUnit)
				assert.Less(t, b.Orbit.Radius, maxOrbitAU*AstronomicalUnit)
				continue
			}

			parent, ok := ids[*b.Orbit.Parent]
			require.True(t, ok, "parent belongs to the same system")
			require.Greater(t, parent.Mass, b.Mass)
			require.GreaterOrEqual(t, b.Orbit.Radius, 0.0)
		}
	}
}

func TestGenerateSystem_Reproducible(t *testing.T) {
	systemID := uuid.New()

	a, err := testGenerator(3).GenerateSystem(systemID, defaultConfig())
	require.NoError(t, err)
	b, err := testGenerator(3).GenerateSystem(systemID, defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateSystem_SingleBody(t *testing.T) {
	cfg := defaultConfig()
	cfg.MinBodies, cfg.MaxBodies = 1, 1

	for i := 0; i < 100; i++ {
		bodies, err := testGenerator(i).GenerateSystem(uuid.New(), cfg)
		require.NoError(t, err)
		require.Len(t, bodies, 1)
		assert.False(t, bodies[0].Orbit.HasParent())
		assert.NotEqual(t, BodyTypeRing, bodies[0].Type)
	}
}

func TestGenerateSystem_Empty(t *testing.T) {
	cfg := defaultConfig()
	cfg.MinBodies, cfg.MaxBodies = 0, 0

	bodies, err := testGenerator(0).GenerateSystem(uuid.New(), cfg)
	require.NoError(t, err)
	assert.Empty(t, bodies)
}

func TestGenerateSystem_ZeroRocheFactorNeverRings(t *testing.T) {
	cfg := defaultConfig()
	cfg.RocheLimitFactor = 0

	for i := 0; i < 200; i++ {
		bodies, err := testGenerator(i).GenerateSystem(uuid.New(), cfg)
		require.NoError(t, err)
		for _, b := range bodies {
			require.NotEqual(t, BodyTypeRing, b.Type)
		}
	}
}

func TestGenerateSystem_RingsKeepEverythingButType(t *testing.T) {
	systemID := uuid.New()
	plain := defaultConfig()
	plain.RocheLimitFactor = 0
	ringed := defaultConfig()
	ringed.RocheLimitFactor = math.MaxFloat32

	sawRing := false
	for i := 0; i < 100; i++ {
		before, err := testGenerator(i).GenerateSystem(systemID, plain)
		require.NoError(t, err)
		after, err := testGenerator(i).GenerateSystem(systemID, ringed)
		require.NoError(t, err)
		require.Len(t, after, len(before))

		for k := range before {
			if after[k].Type == BodyTypeRing {
				sawRing = true
				require.True(t, after[k].Orbit.HasParent())
			}
			b := after[k]
			b.Type = before[k].Type
			require.Equal(t, before[k], b)
		}
	}
	assert.True(t, sawRing, "a large roche factor should ring at least one moon")
}

func TestSystemConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *SystemConfig)
		field  string
	}{
		{"negative min", func(c *SystemConfig) { c.MinBodies = -1 }, "min_bodies"},
		{"inverted range", func(c *SystemConfig) { c.MinBodies, c.MaxBodies = 4, 3 }, "max_bodies"},
		{"zero std", func(c *SystemConfig) { c.LogStdMass = 0 }, "log_std_mass"},
		{"negative std", func(c *SystemConfig) { c.LogStdMass = -0.5 }, "log_std_mass"},
		{"nan mean", func(c *SystemConfig) { c.LogMeanMass = math.NaN() }, "log_mean_mass"},
		{"negative factor", func(c *SystemConfig) { c.RocheLimitFactor = -1 }, "roche_limit_factor"},
		{"infinite factor", func(c *SystemConfig) { c.RocheLimitFactor = math.Inf(1) }, "roche_limit_factor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)

			bodies, err := testGenerator(0).GenerateSystem(uuid.New(), cfg)
			require.Error(t, err)
			assert.Nil(t, bodies)
			assert.Contains(t, err.Error(), tt.field)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfiguration))
		})
	}
}

func TestGenerateSystem_MassOverflow(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *SystemConfig)
	}{
		{"huge mean", func(c *SystemConfig) { c.LogMeanMass = 1000 }},
		{"tiny mean", func(c *SystemConfig) { c.LogMeanMass = -1000 }},
		{"huge std", func(c *SystemConfig) { c.LogStdMass = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfiguration))
			assert.Contains(t, err.Error(), "log_mean_mass")
			assert.Contains(t, err.Error(), "log_std_mass")

			bodies, err := testGenerator(0).GenerateSystem(uuid.New(), cfg)
			require.Error(t, err)
			assert.Nil(t, bodies)
		})
	}
}

func TestSystemConfig_ValidateAcceptsWideButFiniteMasses(t *testing.T) {
	cfg := defaultConfig()
	cfg.LogMeanMass = 20
	cfg.LogStdMass = 5

	require.NoError(t, cfg.Validate())
	bodies, err := testGenerator(3).GenerateSystem(uuid.New(), cfg)
	require.NoError(t, err)
	for _, b := range bodies {
		assert.False(t, math.IsInf(b.Mass, 0))
	}
}

func TestSortByMass_Stable(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	bodies := []Body{{ID: a, Mass: 1}, {ID: b, Mass: 3}, {ID: c, Mass: 1}}

	SortByMass(bodies)

	assert.Equal(t, []uuid.UUID{b, a, c}, []uuid.UUID{bodies[0].ID, bodies[1].ID, bodies[2].ID})
}

func orbiting(mass, orbitRadius float64) Body {
	return Body{
		ID:     uuid.New(),
		Mass:   mass,
		Radius: RadiusFromMass(mass),
		Type:   classify(mass),
		Orbit:  Orbit{Radius: orbitRadius},
	}
}

func TestFindCaptures_EqualOrbitsQualify(t *testing.T) {
	bodies := []Body{orbiting(1e27, AstronomicalUnit), orbiting(1e25, AstronomicalUnit)}

	captures := findCaptures(bodies)

	require.Len(t, captures, 1)
	assert.Equal(t, capture{parent: 0, child: 1, separation: 0}, captures[0])
}

func TestFindCaptures_EqualMassesDoNotCapture(t *testing.T) {
	bodies := []Body{orbiting(1e26, AstronomicalUnit), orbiting(1e26, AstronomicalUnit)}

	assert.Empty(t, findCaptures(bodies))
}

func TestFindCaptures_HillSphereEdge(t *testing.T) {
	parent := orbiting(1e27, AstronomicalUnit)
	hill := HillRadius(parent.Orbit.Radius, parent.Mass)

	outside := []Body{parent, orbiting(1e25, AstronomicalUnit+1.01*hill)}
	assert.Empty(t, findCaptures(outside))

	inside := []Body{parent, orbiting(1e25, AstronomicalUnit-0.99*hill)}
	assert.Len(t, findCaptures(inside), 1)
}

func TestAssignMoons_LastWriterWins(t *testing.T) {
	// all three share one neighbourhood: 0 captures 1 and 2, 1 captures 2
	bodies := []Body{
		orbiting(1e27, AstronomicalUnit),
		orbiting(1e26, AstronomicalUnit+1e9),
		orbiting(1e25, AstronomicalUnit+2e9),
	}

	n, err := testGenerator(0).AssignMoons(bodies)
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	require.True(t, bodies[1].Orbit.HasParent())
	require.True(t, bodies[2].Orbit.HasParent())
	assert.False(t, bodies[0].Orbit.HasParent())
	assert.Equal(t, bodies[0].ID, *bodies[1].Orbit.Parent)
	assert.Equal(t, bodies[1].ID, *bodies[2].Orbit.Parent)
}

func TestAssignMoons_NoCandidates(t *testing.T) {
	bodies := []Body{orbiting(1e27, AstronomicalUnit), orbiting(1e25, 1000*AstronomicalUnit)}

	n, err := testGenerator(0).AssignMoons(bodies)
	require.NoError(t, err)

	assert.Zero(t, n)
	assert.False(t, bodies[1].Orbit.HasParent())
	assert.Equal(t, 1000*AstronomicalUnit, bodies[1].Orbit.Radius)
}

func TestGenerateMoonOrbit(t *testing.T) {
	g := testGenerator(0)
	roche := MassRocheLimit(1000, SolarMass)
	require.InDelta(t, 2440.0, roche, 1e-9)

	for i := 0; i < 1000; i++ {
		orbit, err := g.GenerateMoonOrbit(SolarMass, 1000, 1e6)
		require.NoError(t, err)
		require.GreaterOrEqual(t, orbit, roche)
		require.Less(t, orbit, 1e6)
	}

	orbit, err := g.GenerateMoonOrbit(SolarMass, 1000, roche)
	require.NoError(t, err)
	assert.Zero(t, orbit, "a roche limit reaching the separation yields a degenerate orbit")

	orbit, err = g.GenerateMoonOrbit(SolarMass, 1000, 0)
	require.NoError(t, err)
	assert.Zero(t, orbit)
}

func moonPair(parentRadius, childRadius float64) (Body, Body) {
	parent := Body{ID: uuid.New(), Mass: 1e27, Radius: parentRadius, Type: BodyTypeGasGiant}
	parentID := parent.ID
	child := Body{ID: uuid.New(), Mass: 1e24, Radius: childRadius, Type: BodyTypePlanet,
		Orbit: Orbit{Parent: &parentID}}
	return parent, child
}

func TestResolveRocheLimits_StrictBoundary(t *testing.T) {
	const factor = 1.2
	parent, child := moonPair(70000, 6000)

	pd, ok := parent.Density()
	require.True(t, ok)
	cd, ok := child.Density()
	require.True(t, ok)
	threshold := DensityRocheLimit(parent.Radius, pd, cd) * factor

	child.Orbit.Radius = threshold
	bodies := []Body{parent, child}
	assert.Zero(t, ResolveRocheLimits(bodies, factor))
	assert.Equal(t, BodyTypePlanet, bodies[1].Type, "an orbit exactly at the limit survives")

	child.Orbit.Radius = math.Nextafter(threshold, 0)
	bodies = []Body{parent, child}
	assert.Equal(t, 1, ResolveRocheLimits(bodies, factor))
	assert.Equal(t, BodyTypeRing, bodies[1].Type)
	assert.Equal(t, child.Mass, bodies[1].Mass)
	assert.Equal(t, child.Radius, bodies[1].Radius)
	assert.Equal(t, child.Orbit, bodies[1].Orbit)
}

func TestResolveRocheLimits_UndefinedDensitySkipped(t *testing.T) {
	parent, child := moonPair(70000, 0)

	bodies := []Body{parent, child}
	assert.Zero(t, ResolveRocheLimits(bodies, math.MaxFloat64))
	assert.Equal(t, BodyTypePlanet, bodies[1].Type)
}

func TestResolveRocheLimits_UnknownParentSkipped(t *testing.T) {
	_, child := moonPair(70000, 6000)

	bodies := []Body{child}
	assert.Zero(t, ResolveRocheLimits(bodies, math.MaxFloat64))
	assert.Equal(t, BodyTypePlanet, bodies[0].Type)
}

func TestDensity(t *testing.T) {
	d, ok := Density(4, 1)
	require.True(t, ok)
	assert.InDelta(t, 4/math.Pi*4/3, d, 1e-12)

	for _, r := range []float64{0, math.Inf(1), math.NaN()} {
		d, ok := Density(1, r)
		assert.False(t, ok)
		assert.Zero(t, d)
	}
}

func TestHillRadius(t *testing.T) {
	assert.InDelta(t, 1.0, HillRadius(1, 3*SolarMass), 1e-12)
	assert.Zero(t, HillRadius(0, JupiterMass))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, BodyTypePlanet, classify(gasGiantMass))
	assert.Equal(t, BodyTypeGasGiant, classify(math.Nextafter(gasGiantMass, math.Inf(1))))
	assert.Equal(t, BodyTypePlanet, classify(EarthMass))
}
