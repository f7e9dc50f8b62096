package planet

import "math"

const (
	EarthMass        = 5.976e24
	JupiterMass      = 1.898e27
	SolarMass        = 1.989e30
	AstronomicalUnit = 149597870700.0
	EarthRadiusKm    = 6371.0

	// bodies heavier than a tenth of Jupiter are gas giants
	gasGiantMass = 0.1 * JupiterMass

	massRadiusExponent = 0.3
	rocheCoefficient   = 2.44

	minOrbitAU = 0.1
	maxOrbitAU = 1500.0

	// deviations of the log-normal mass draw checked by SystemConfig.Validate
	massSigmaBound = 8.0
)

// RadiusFromMass applies the empirical mass-radius power law
func RadiusFromMass(mass float64) float64 {
	return math.Pow(mass, massRadiusExponent) * EarthRadiusKm
}

func classify(mass float64) BodyType {
	if mass > gasGiantMass {
		return BodyTypeGasGiant
	}
	return BodyTypePlanet
}

// HillRadius is the distance within which a body of the given mass
// dominates the star's pull.
func HillRadius(orbitRadius, mass float64) float64 {
	return orbitRadius * math.Cbrt(mass/(3*SolarMass))
}

// MassRocheLimit bounds the orbit a freshly captured moon may take
func MassRocheLimit(parentRadius, parentMass float64) float64 {
	return rocheCoefficient * parentRadius * math.Cbrt(parentMass/SolarMass)
}

// DensityRocheLimit is the distance inside which a satellite of the given
// density is torn apart by its parent.
func DensityRocheLimit(parentRadius, parentDensity, childDensity float64) float64 {
	return rocheCoefficient * parentRadius * math.Cbrt(parentDensity/childDensity)
}

// Density returns mass / radius^3 / π * 4/3. A zero or non-finite radius
// makes the density undefined and reports false.
func Density(mass, radius float64) (float64, bool) {
	if radius == 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return 0, false
	}
	d := mass / (radius * radius * radius) / math.Pi * 4 / 3
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, false
	}
	return d, true
}
