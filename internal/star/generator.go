package star

import (
	"fmt"

	"starforge/internal/shared/random"
)

const DefaultName = "Star"

// Generator samples stars from the probability tables. Each draw in the
// chain is an independent sample from the generator's own source.
type Generator struct {
	src *random.Source
}

func NewGenerator(src *random.Source) *Generator {
	return &Generator{src: src}
}

func (g *Generator) Generate() Star {
	return g.GenerateNamed(DefaultName)
}

// GenerateNamed draws a complete star. It panics only if the static tables
// are malformed.
func (g *Generator) GenerateNamed(name string) Star {
	spectralType := g.spectralType()
	class := g.luminosityClass(spectralType)
	luminosity := g.luminosity(class, spectralType)
	subclass := g.subclass(class, spectralType)
	temperature := g.temperature(spectralType, subclass)

	return New(g.src.UUID(), name, spectralType, class, luminosity, temperature)
}

func (g *Generator) roll() int {
	return 1 + g.src.IntN(rollSides)
}

func (g *Generator) spectralType() SpectralType {
	return pick(spectralThresholds, g.roll())
}

func (g *Generator) luminosityClass(spectralType SpectralType) LuminosityClass {
	class := pick(luminosityClassThresholds, g.roll())
	return overrideClass(class, spectralType)
}

// overrideClass downgrades combinations the tables do not allow to dwarfs
func overrideClass(class LuminosityClass, spectralType SpectralType) LuminosityClass {
	switch {
	case class == ClassHypergiant && spectralType == SpectralO:
		return ClassDwarf
	case class == ClassSubdwarf && spectralType == SpectralM:
		return ClassDwarf
	default:
		return class
	}
}

func (g *Generator) luminosity(class LuminosityClass, spectralType SpectralType) float64 {
	r, ok := LuminosityRange(class, spectralType)
	if !ok {
		panic(fmt.Sprintf("star: no luminosity range for class %s type %s", class, spectralType))
	}
	return must(g.src.FloatInclusive(r.Min, r.Max))
}

func (g *Generator) subclass(class LuminosityClass, spectralType SpectralType) int {
	return clampSubclass(g.src.IntN(10), class, spectralType)
}

func clampSubclass(index int, class LuminosityClass, spectralType SpectralType) int {
	if spectralType == SpectralO && class == ClassDwarf {
		return max(index, 5)
	}
	if spectralType == SpectralM {
		return min(index, 6)
	}
	return index
}

func (g *Generator) temperature(spectralType SpectralType, subclass int) float64 {
	profile, ok := ProfileFor(spectralType)
	if !ok {
		panic(fmt.Sprintf("star: no temperature profile for type %s", spectralType))
	}

	surface := SurfaceTemperature(profile, subclass)

	jitter := profile.Coeff / 2
	if subclass == 0 {
		jitter = profile.Coeff / 6
	}
	return surface + must(g.src.FloatInclusive(-jitter, jitter))
}

// SurfaceTemperature is the un-jittered temperature of a subclass (0 hottest)
func SurfaceTemperature(profile TemperatureProfile, subclass int) float64 {
	return profile.Min + profile.Coeff*float64(9-subclass)
}

func must(v float64, err error) float64 {
	if err != nil {
		panic(fmt.Sprintf("star: %v", err))
	}
	return v
}
