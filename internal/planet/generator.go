package planet

import (
	"log/slog"
	"math"
	"sort"

	"starforge/internal/shared/errors"
	"starforge/internal/shared/random"

	"github.com/google/uuid"
)

// Generator builds planetary systems from its own random source. A
// generator serves one system at a time and must not be shared between
// goroutines.
type Generator struct {
	src    *random.Source
	logger *slog.Logger
}

func NewGenerator(src *random.Source, logger *slog.Logger) *Generator {
	return &Generator{
		src:    src,
		logger: logger,
	}
}

type capture struct {
	parent     int
	child      int
	separation float64
}

// GenerateSystem samples the bodies orbiting systemID, orders them by mass,
// lets heavy bodies capture lighter neighbours as moons and turns moons
// inside their parent's Roche limit into rings.
func (g *Generator) GenerateSystem(systemID uuid.UUID, cfg SystemConfig) ([]Body, error) {
	logger := g.logger.With("component", "planet_generator", "operation", "generate_system", "system_id", systemID)

	if err := cfg.Validate(); err != nil {
		logger.Warn("Rejected system configuration", "error", err)
		return nil, err
	}

	count, err := g.src.IntInclusive(cfg.MinBodies, cfg.MaxBodies)
	if err != nil {
		return nil, err
	}

	bodies := make([]Body, 0, count)
	for i := 0; i < count; i++ {
		body, err := g.sampleBody(systemID, cfg)
		if err != nil {
			logger.Warn("Failed to sample body", "index", i, "error", err)
			return nil, err
		}
		bodies = append(bodies, body)
	}

	SortByMass(bodies)

	moons, err := g.AssignMoons(bodies)
	if err != nil {
		logger.Error("Failed to assign moons", "error", err)
		return nil, err
	}

	rings := ResolveRocheLimits(bodies, cfg.RocheLimitFactor)

	logger.Debug("Planetary system generated", "bodies", len(bodies), "captures", moons, "rings", rings)
	return bodies, nil
}

func (g *Generator) sampleBody(systemID uuid.UUID, cfg SystemConfig) (Body, error) {
	id := g.src.UUID()

	scale, err := g.src.LogNormal(cfg.LogMeanMass, cfg.LogStdMass)
	if err != nil {
		return Body{}, err
	}
	mass := scale * EarthMass
	if !(mass > 0) || math.IsInf(mass, 0) {
		return Body{}, errors.Configurationf("sampled mass %g kg overflowed the float64 range (log_mean_mass=%g log_std_mass=%g)",
			mass, cfg.LogMeanMass, cfg.LogStdMass)
	}

	orbitAU, err := g.src.Float(minOrbitAU, maxOrbitAU)
	if err != nil {
		return Body{}, err
	}
	position, err := g.src.Float(0, 2*math.Pi)
	if err != nil {
		return Body{}, err
	}

	return Body{
		ID:       id,
		SystemID: systemID,
		Mass:     mass,
		Radius:   RadiusFromMass(mass),
		Type:     classify(mass),
		Orbit: Orbit{
			Radius:   orbitAU * AstronomicalUnit,
			Position: position,
		},
	}, nil
}

// SortByMass orders bodies from heaviest to lightest. Equal masses keep
// their sampling order.
func SortByMass(bodies []Body) {
	sort.SliceStable(bodies, func(i, j int) bool {
		return bodies[i].Mass > bodies[j].Mass
	})
}

// findCaptures lists every (parent, child) pair where the child sits inside
// the parent's Hill sphere. Bodies must already be sorted by mass. The scan
// reads the system as it was before any capture is applied, so a body
// captured in this pass may still capture lighter bodies itself and
// moon-of-moon chains can appear. The hierarchy is not capped at two levels.
func findCaptures(bodies []Body) []capture {
	var captures []capture
	for i := range bodies {
		parent := bodies[i]
		hill := HillRadius(parent.Orbit.Radius, parent.Mass)

		for j := i + 1; j < len(bodies); j++ {
			child := bodies[j]
			if child.Orbit.HasParent() {
				continue
			}

			separation := math.Abs(child.Orbit.Radius - parent.Orbit.Radius)
			if separation < hill && child.Mass < parent.Mass {
				captures = append(captures, capture{parent: i, child: j, separation: separation})
			}
		}
	}
	return captures
}

// AssignMoons applies every capture found in bodies, in parent then child
// order. A child claimed by several parents ends up with the last one. It
// returns the number of captures applied.
func (g *Generator) AssignMoons(bodies []Body) (int, error) {
	captures := findCaptures(bodies)

	for _, c := range captures {
		parent := bodies[c.parent]
		parentID := parent.ID

		orbit, err := g.GenerateMoonOrbit(parent.Mass, parent.Radius, c.separation)
		if err != nil {
			return 0, err
		}

		bodies[c.child].Orbit.Parent = &parentID
		bodies[c.child].Orbit.Radius = orbit
	}
	return len(captures), nil
}

// GenerateMoonOrbit draws a moon orbit between the parent's Roche limit and
// the capture separation. When the Roche limit already reaches the
// separation the capture is degenerate and the orbit radius is 0.
func (g *Generator) GenerateMoonOrbit(parentMass, parentRadius, separation float64) (float64, error) {
	roche := MassRocheLimit(parentRadius, parentMass)
	if roche >= separation {
		return 0, nil
	}
	return g.src.Float(roche, separation)
}

// ResolveRocheLimits relabels as rings the moons orbiting closer than
// factor times their parent's density Roche limit. Nothing else about the
// body changes. Moons whose densities are undefined are left alone. It
// returns the number of rings.
func ResolveRocheLimits(bodies []Body, factor float64) int {
	index := make(map[uuid.UUID]int, len(bodies))
	for i, b := range bodies {
		index[b.ID] = i
	}

	rings := 0
	for i := range bodies {
		body := &bodies[i]
		if !body.Orbit.HasParent() {
			continue
		}
		p, ok := index[*body.Orbit.Parent]
		if !ok {
			continue
		}
		parent := bodies[p]

		parentDensity, ok := parent.Density()
		if !ok {
			continue
		}
		childDensity, ok := body.Density()
		if !ok || childDensity == 0 {
			continue
		}

		roche := DensityRocheLimit(parent.Radius, parentDensity, childDensity)
		if body.Orbit.Radius < roche*factor {
			body.Type = BodyTypeRing
			rings++
		}
	}
	return rings
}
