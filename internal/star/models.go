package star

import (
	"math"

	"github.com/google/uuid"
)

// SpectralType is the temperature class of a star, O hottest to M coolest
type SpectralType string

const (
	SpectralO SpectralType = "O"
	SpectralB SpectralType = "B"
	SpectralA SpectralType = "A"
	SpectralF SpectralType = "F"
	SpectralG SpectralType = "G"
	SpectralK SpectralType = "K"
	SpectralM SpectralType = "M"
)

// SpectralTypes lists every spectral type from hottest to coolest
var SpectralTypes = []SpectralType{SpectralO, SpectralB, SpectralA, SpectralF, SpectralG, SpectralK, SpectralM}

func (t SpectralType) Valid() bool {
	_, ok := temperatureProfiles[t]
	return ok
}

func (t SpectralType) Description() string {
	switch t {
	case SpectralO:
		return "O type (blue)"
	case SpectralB:
		return "B type (blue)"
	case SpectralA:
		return "A type (white blue)"
	case SpectralF:
		return "F type (white yellow)"
	case SpectralG:
		return "G type (yellow orange)"
	case SpectralK:
		return "K type (orange red)"
	case SpectralM:
		return "M type (red)"
	default:
		return "unknown type"
	}
}

// LuminosityClass is the size/evolutionary class of a star, hypergiant to dwarf
type LuminosityClass string

const (
	ClassHypergiant  LuminosityClass = "O"
	ClassSupergiant  LuminosityClass = "I"
	ClassBrightGiant LuminosityClass = "II"
	ClassGiant       LuminosityClass = "III"
	ClassSubdwarf    LuminosityClass = "IV"
	ClassDwarf       LuminosityClass = "V"
)

// LuminosityClasses lists every luminosity class from hypergiant to dwarf
var LuminosityClasses = []LuminosityClass{ClassHypergiant, ClassSupergiant, ClassBrightGiant, ClassGiant, ClassSubdwarf, ClassDwarf}

func (c LuminosityClass) Valid() bool {
	_, ok := luminosityRanges[c]
	return ok
}

func (c LuminosityClass) Description() string {
	switch c {
	case ClassHypergiant:
		return "O class (hypergiant)"
	case ClassSupergiant:
		return "I class (supergiant)"
	case ClassBrightGiant:
		return "II class (bright giant)"
	case ClassGiant:
		return "III class (giant)"
	case ClassSubdwarf:
		return "IV class (subdwarf)"
	case ClassDwarf:
		return "V class (dwarf)"
	default:
		return "unknown class"
	}
}

// Star is an immutable stellar description. Luminosity and temperature are in
// solar units and Kelvin; radius and mass are solar units derived from them.
type Star struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	SpectralType    SpectralType    `json:"spectral_type"`
	LuminosityClass LuminosityClass `json:"luminosity_class"`
	Luminosity      float64         `json:"luminosity"`
	Temperature     float64         `json:"temperature"`
	Radius          float64         `json:"radius"`
	Mass            float64         `json:"mass"`
}

// New builds a star, deriving mass and radius from luminosity and temperature
func New(id uuid.UUID, name string, spectralType SpectralType, class LuminosityClass, luminosity, temperature float64) Star {
	return Star{
		ID:              id,
		Name:            name,
		SpectralType:    spectralType,
		LuminosityClass: class,
		Luminosity:      luminosity,
		Temperature:     temperature,
		Radius:          RadiusFromLuminosity(luminosity, temperature),
		Mass:            MassFromLuminosity(luminosity),
	}
}

// MassFromLuminosity approximates the mass–luminosity relation across the
// dwarf and giant regimes with a five piece power law.
func MassFromLuminosity(luminosity float64) float64 {
	switch {
	case luminosity < 0.03418801:
		return math.Pow(luminosity, 1/2.3)
	case luminosity < 16.97056275:
		return math.Pow(luminosity, 1/4.0)
	case luminosity < 64_000:
		return math.Pow(luminosity/1.5, 1/3.5)
	case luminosity <= 160_000:
		return luminosity / 3200
	default:
		return math.Pow(luminosity/3200, 1/1.25)
	}
}

// RadiusFromLuminosity applies Stefan–Boltzmann normalised to the Sun (5766 K)
func RadiusFromLuminosity(luminosity, temperature float64) float64 {
	return math.Sqrt(luminosity / math.Pow(temperature/solarTemperature, 4))
}
