package planet

import (
	"math"

	"starforge/internal/shared/errors"

	"github.com/google/uuid"
)

type BodyType string

const (
	BodyTypePlanet       BodyType = "planet"
	BodyTypeGasGiant     BodyType = "gas_giant"
	BodyTypeMoon         BodyType = "moon"
	BodyTypeAsteroidBelt BodyType = "asteroid_belt"
	BodyTypeRing         BodyType = "ring"
)

var BodyTypes = []BodyType{
	BodyTypePlanet,
	BodyTypeGasGiant,
	BodyTypeMoon,
	BodyTypeAsteroidBelt,
	BodyTypeRing,
}

func (t BodyType) Valid() bool {
	for _, bt := range BodyTypes {
		if bt == t {
			return true
		}
	}
	return false
}

// Orbit describes where a body travels. Radius is in meters from the
// primary, which is the star when Parent is nil.
type Orbit struct {
	Radius   float64    `json:"radius"`
	Position float64    `json:"position"`
	Period   float64    `json:"period"`
	Parent   *uuid.UUID `json:"parent,omitempty"`
}

func (o Orbit) HasParent() bool {
	return o.Parent != nil
}

// Body is one member of a planetary system. Mass is in kilograms and
// Radius in kilometers.
type Body struct {
	ID       uuid.UUID `json:"id"`
	SystemID uuid.UUID `json:"system_id"`
	Mass     float64   `json:"mass"`
	Radius   float64   `json:"radius"`
	Type     BodyType  `json:"type"`
	Orbit    Orbit     `json:"orbit"`
}

// Density reports the body's density, or false when it is undefined
func (b Body) Density() (float64, bool) {
	return Density(b.Mass, b.Radius)
}

type SystemConfig struct {
	MinBodies        int     `json:"min_bodies"`
	MaxBodies        int     `json:"max_bodies"`
	LogMeanMass      float64 `json:"log_mean_mass"`
	LogStdMass       float64 `json:"log_std_mass"`
	RocheLimitFactor float64 `json:"roche_limit_factor"`
}

// Validate rejects distribution parameters that cannot be sampled
func (c SystemConfig) Validate() error {
	if c.MinBodies < 0 {
		return errors.Configurationf("min_bodies must not be negative, got %d", c.MinBodies)
	}
	if c.MinBodies > c.MaxBodies {
		return errors.Configurationf("min_bodies (%d) must not exceed max_bodies (%d)", c.MinBodies, c.MaxBodies)
	}
	if math.IsNaN(c.LogMeanMass) || math.IsInf(c.LogMeanMass, 0) {
		return errors.Configurationf("log_mean_mass must be finite, got %g", c.LogMeanMass)
	}
	if !(c.LogStdMass > 0) || math.IsInf(c.LogStdMass, 0) {
		return errors.Configurationf("log_std_mass must be positive and finite, got %g", c.LogStdMass)
	}
	// masses within massSigmaBound deviations of the mean must be representable
	high := math.Exp(c.LogMeanMass+massSigmaBound*c.LogStdMass) * EarthMass
	low := math.Exp(c.LogMeanMass-massSigmaBound*c.LogStdMass) * EarthMass
	if math.IsInf(high, 0) || !(low > 0) {
		return errors.Configurationf("log_mean_mass=%g with log_std_mass=%g samples masses outside the float64 range",
			c.LogMeanMass, c.LogStdMass)
	}
	if !(c.RocheLimitFactor >= 0) || math.IsInf(c.RocheLimitFactor, 0) {
		return errors.Configurationf("roche_limit_factor must be non-negative and finite, got %g", c.RocheLimitFactor)
	}
	return nil
}
