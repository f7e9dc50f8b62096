package universe

import (
	"time"

	"starforge/internal/galaxy"
	"starforge/internal/planet"
	"starforge/internal/shared/config"
	"starforge/internal/shared/errors"
	"starforge/internal/spatial"
	"starforge/internal/star"

	"github.com/google/uuid"
)

// Config gathers everything one generation run needs
type Config struct {
	Galaxy    galaxy.Config       `json:"galaxy"`
	System    planet.SystemConfig `json:"system"`
	Workers   int                 `json:"-"`
	Sectors   int                 `json:"-"`
	StarNames []string            `json:"star_names"`
}

func ConfigFromSettings(cfg *config.Config) Config {
	return Config{
		Galaxy: galaxy.Config{
			Seed:         cfg.Galaxy.Seed,
			NumStars:     cfg.Galaxy.NumStars,
			GalaxyRadius: cfg.Galaxy.GalaxyRadius,
			ArmStrength:  cfg.Galaxy.ArmStrength,
			ArmCount:     cfg.Galaxy.ArmCount,
			NoiseScale:   cfg.Galaxy.NoiseScale,
		},
		System: planet.SystemConfig{
			MinBodies:        cfg.System.MinBodies,
			MaxBodies:        cfg.System.MaxBodies,
			LogMeanMass:      cfg.System.LogMeanMass,
			LogStdMass:       cfg.System.LogStdMass,
			RocheLimitFactor: cfg.System.RocheLimitFactor,
		},
		Workers:   cfg.Generation.Workers,
		Sectors:   cfg.Generation.Sectors,
		StarNames: cfg.Generation.StarNames,
	}
}

func (c Config) Validate() error {
	if err := c.Galaxy.Validate(); err != nil {
		return err
	}
	if err := c.System.Validate(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return errors.Configurationf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Sectors < 0 {
		return errors.Configurationf("sectors must not be negative, got %d", c.Sectors)
	}
	if len(c.StarNames) == 0 {
		return errors.Configurationf("star_names must not be empty")
	}
	return nil
}

// System is one star, where it sits in the galaxy and what orbits it
type System struct {
	Star     star.Star       `json:"star"`
	Position galaxy.Position `json:"position"`
	Bodies   []planet.Body   `json:"bodies"`
}

// Universe is the result of one generation run. Once published it is never
// modified; regenerating produces a new value.
type Universe struct {
	ID        uuid.UUID `json:"id"`
	Seed      int64     `json:"seed"`
	Config    Config    `json:"config"`
	Systems   []System  `json:"systems"`
	CreatedAt time.Time `json:"created_at"`

	index map[uuid.UUID]int
	grid  *spatial.Grid
}

// buildIndex prepares the lookup structures of a universe before it is
// shared. A zero sector count falls back to spatial.DefaultSectorCount.
func (u *Universe) buildIndex() {
	u.index = make(map[uuid.UUID]int, len(u.Systems))
	points := make([]spatial.Point, len(u.Systems))
	for i, s := range u.Systems {
		u.index[s.Star.ID] = i
		points[i] = spatial.Point{ID: s.Star.ID, X: s.Position.X, Y: s.Position.Y}
	}

	sectors := u.Config.Sectors
	if sectors == 0 {
		sectors = spatial.DefaultSectorCount
	}
	u.grid = spatial.NewGrid(points, sectors)
}

// System looks up the system around the star with the given id
func (u *Universe) System(starID uuid.UUID) (System, bool) {
	if u.index == nil {
		for _, s := range u.Systems {
			if s.Star.ID == starID {
				return s, true
			}
		}
		return System{}, false
	}
	i, ok := u.index[starID]
	if !ok {
		return System{}, false
	}
	return u.Systems[i], true
}

func (u *Universe) BodyCount() int {
	n := 0
	for _, s := range u.Systems {
		n += len(s.Bodies)
	}
	return n
}

type Summary struct {
	ID                uuid.UUID                    `json:"id"`
	Seed              int64                        `json:"seed"`
	Stars             int                          `json:"stars"`
	Bodies            int                          `json:"bodies"`
	Moons             int                          `json:"moons"`
	SpectralTypes     map[star.SpectralType]int    `json:"spectral_types"`
	LuminosityClasses map[star.LuminosityClass]int `json:"luminosity_classes"`
	BodyTypes         map[planet.BodyType]int      `json:"body_types"`
	CreatedAt         time.Time                    `json:"created_at"`
}

func (u *Universe) Summary() Summary {
	s := Summary{
		ID:                u.ID,
		Seed:              u.Seed,
		Stars:             len(u.Systems),
		SpectralTypes:     make(map[star.SpectralType]int),
		LuminosityClasses: make(map[star.LuminosityClass]int),
		BodyTypes:         make(map[planet.BodyType]int),
		CreatedAt:         u.CreatedAt,
	}

	for _, sys := range u.Systems {
		s.SpectralTypes[sys.Star.SpectralType]++
		s.LuminosityClasses[sys.Star.LuminosityClass]++
		for _, b := range sys.Bodies {
			s.Bodies++
			s.BodyTypes[b.Type]++
			if b.Orbit.HasParent() {
				s.Moons++
			}
		}
	}
	return s
}

// StarEntry is the list view of a system
type StarEntry struct {
	star.Star
	Position    galaxy.Position `json:"position"`
	BodyCount   int             `json:"body_count"`
	Description string          `json:"description"`
}

func entryFor(s System) StarEntry {
	return StarEntry{
		Star:        s.Star,
		Position:    s.Position,
		BodyCount:   len(s.Bodies),
		Description: s.Star.SpectralType.Description() + ", " + s.Star.LuminosityClass.Description(),
	}
}
