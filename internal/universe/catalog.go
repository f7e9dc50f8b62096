package universe

import (
	"sync/atomic"

	"starforge/internal/planet"
	"starforge/internal/shared/errors"
	"starforge/internal/spatial"
	"starforge/internal/star"

	"github.com/google/uuid"
)

// Catalog serves the most recently published universe. Publishing swaps
// the whole snapshot; readers keep whichever snapshot they loaded.
type Catalog struct {
	current atomic.Pointer[Universe]
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) Publish(u *Universe) {
	if u.index == nil {
		u.buildIndex()
	}
	c.current.Store(u)
}

func (c *Catalog) Current() (*Universe, error) {
	u := c.current.Load()
	if u == nil {
		return nil, errors.Unavailable("universe has not been generated yet")
	}
	return u, nil
}

// Stars lists every star, or only those of one spectral type when
// spectralType is not empty.
func (c *Catalog) Stars(spectralType string) ([]StarEntry, error) {
	u, err := c.Current()
	if err != nil {
		return nil, err
	}

	filter := star.SpectralType(spectralType)
	if spectralType != "" && !filter.Valid() {
		return nil, errors.Validationf("unknown spectral type %q", spectralType)
	}

	entries := make([]StarEntry, 0, len(u.Systems))
	for _, s := range u.Systems {
		if spectralType != "" && s.Star.SpectralType != filter {
			continue
		}
		entries = append(entries, entryFor(s))
	}
	return entries, nil
}

func (c *Catalog) System(starID uuid.UUID) (System, error) {
	u, err := c.Current()
	if err != nil {
		return System{}, err
	}

	s, ok := u.System(starID)
	if !ok {
		return System{}, errors.NotFoundf("star %s not found", starID)
	}
	return s, nil
}

func (c *Catalog) Star(starID uuid.UUID) (StarEntry, error) {
	s, err := c.System(starID)
	if err != nil {
		return StarEntry{}, err
	}
	return entryFor(s), nil
}

func (c *Catalog) Layout(starID uuid.UUID) ([]planet.Placement, error) {
	s, err := c.System(starID)
	if err != nil {
		return nil, err
	}
	return planet.Layout(s.Bodies), nil
}

func (c *Catalog) Sectors() ([]spatial.Sector, error) {
	u, err := c.Current()
	if err != nil {
		return nil, err
	}
	return u.grid.Sectors(), nil
}

// SectorStars lists the stars inside sector (x, y) of the sector grid
func (c *Catalog) SectorStars(x, y int) (spatial.Sector, []StarEntry, error) {
	u, err := c.Current()
	if err != nil {
		return spatial.Sector{}, nil, err
	}

	sector, ok := u.grid.Sector(x, y)
	if !ok {
		return spatial.Sector{}, nil, errors.NotFoundf("sector %d,%d not found", x, y)
	}

	ids, _ := u.grid.Members(x, y)
	entries := make([]StarEntry, 0, len(ids))
	for _, id := range ids {
		if s, ok := u.System(id); ok {
			entries = append(entries, entryFor(s))
		}
	}
	return sector, entries, nil
}
