package star

const solarTemperature = 5766.0

// Range is an inclusive numeric interval
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// threshold maps a cumulative roll bound on a 1..=1000 draw to an outcome
type threshold[T any] struct {
	upTo    int
	outcome T
}

const rollSides = 1000

var spectralThresholds = []threshold[SpectralType]{
	{2, SpectralO},
	{4, SpectralB},
	{11, SpectralA},
	{13, SpectralF},
	{68, SpectralG},
	{148, SpectralK},
	{rollSides, SpectralM},
}

var luminosityClassThresholds = []threshold[LuminosityClass]{
	{2, ClassHypergiant},
	{10, ClassSupergiant},
	{60, ClassBrightGiant},
	{190, ClassGiant},
	{200, ClassSubdwarf},
	{rollSides, ClassDwarf},
}

// luminosityRanges is indexed by luminosity class, then spectral type.
// Values are in solar luminosities.
var luminosityRanges = map[LuminosityClass]map[SpectralType]Range{
	ClassDwarf: {
		SpectralO: {20_000, 800_000},
		SpectralB: {80, 20_000},
		SpectralA: {6.5, 80},
		SpectralF: {1.26, 6.5},
		SpectralG: {0.42, 1.26},
		SpectralK: {0.072, 0.42},
		SpectralM: {0.000_015, 0.072},
	},
	ClassSubdwarf: {
		SpectralO: {80_000, 100_000},
		SpectralB: {102, 34_000},
		SpectralA: {13, 102},
		SpectralF: {9, 13},
		SpectralG: {8, 9},
		SpectralK: {8, 9},
		SpectralM: {9, 10},
	},
	ClassGiant: {
		SpectralO: {50_000, 300_000},
		SpectralB: {170, 50_000},
		SpectralA: {97, 170},
		SpectralF: {95, 97},
		SpectralG: {95, 96},
		SpectralK: {96, 98},
		SpectralM: {98, 105},
	},
	ClassBrightGiant: {
		SpectralO: {40_000, 52_000},
		SpectralB: {4_000, 40_000},
		SpectralA: {2_000, 4_000},
		SpectralF: {960, 2_000},
		SpectralG: {950, 960},
		SpectralK: {950, 1_000},
		SpectralM: {1_000, 8_000},
	},
	ClassSupergiant: {
		SpectralO: {10_000, 1_500_000},
		SpectralB: {10_000, 1_500_000},
		SpectralA: {1_000, 100_000},
		SpectralF: {1_000, 100_000},
		SpectralG: {20_000, 500_000},
		SpectralK: {20_000, 500_000},
		SpectralM: {20_000, 500_000},
	},
	ClassHypergiant: {
		SpectralO: {1_000_000, 5_000_000},
		SpectralB: {380_000, 2_000_000},
		SpectralA: {300_000, 600_000},
		SpectralF: {300_000, 600_000},
		SpectralG: {100_000, 500_000},
		SpectralK: {100_000, 500_000},
		SpectralM: {86_000, 500_000},
	},
}

// TemperatureProfile holds the surface temperature bounds of a spectral type
// and the Kelvin step between adjacent subclasses.
type TemperatureProfile struct {
	Max   float64 `json:"max"`
	Min   float64 `json:"min"`
	Coeff float64 `json:"coeff"`
}

var temperatureProfiles = map[SpectralType]TemperatureProfile{
	SpectralO: {Max: 54_000, Min: 33_200, Coeff: 2400},
	SpectralB: {Max: 29_700, Min: 10_700, Coeff: 2111},
	SpectralA: {Max: 9790, Min: 7323, Coeff: 274},
	SpectralF: {Max: 7300, Min: 6033, Coeff: 141},
	SpectralG: {Max: 5940, Min: 5335, Coeff: 67},
	SpectralK: {Max: 5150, Min: 3880, Coeff: 141},
	SpectralM: {Max: 3840, Min: 2376, Coeff: 165},
}

// LuminosityRange returns the luminosity interval for a class/type pair
func LuminosityRange(class LuminosityClass, spectralType SpectralType) (Range, bool) {
	byType, ok := luminosityRanges[class]
	if !ok {
		return Range{}, false
	}
	r, ok := byType[spectralType]
	return r, ok
}

// ProfileFor returns the temperature profile of a spectral type
func ProfileFor(spectralType SpectralType) (TemperatureProfile, bool) {
	p, ok := temperatureProfiles[spectralType]
	return p, ok
}

func pick[T any](table []threshold[T], roll int) T {
	for _, t := range table {
		if roll <= t.upTo {
			return t.outcome
		}
	}
	return table[len(table)-1].outcome
}
