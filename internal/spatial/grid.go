package spatial

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

const DefaultSectorCount = 16

var sectorNames = []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta", "Theta"}

// Grid partitions a set of points into side×side sectors spanning their
// bounding box. A Grid is read-only once built.
type Grid struct {
	side    int
	bounds  Bounds
	cellW   float64
	cellH   float64
	sectors []Sector
	members [][]uuid.UUID
}

// SectorsPerSide returns the smallest grid side holding count sectors
func SectorsPerSide(count int) int {
	if count < 1 {
		return 1
	}
	side := int(math.Sqrt(float64(count)))
	if side*side != count {
		side = int(math.Ceil(math.Sqrt(float64(count))))
	}
	return side
}

func NewGrid(points []Point, sectorCount int) *Grid {
	side := SectorsPerSide(sectorCount)
	g := &Grid{
		side:    side,
		bounds:  boundsOf(points),
		sectors: make([]Sector, side*side),
		members: make([][]uuid.UUID, side*side),
	}

	g.cellW = cellSize(g.bounds.MaxX-g.bounds.MinX, side)
	g.cellH = cellSize(g.bounds.MaxY-g.bounds.MinY, side)

	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			i := y*side + x
			b := Bounds{
				MinX: g.bounds.MinX + float64(x)*g.cellW,
				MinY: g.bounds.MinY + float64(y)*g.cellH,
				MaxX: g.bounds.MinX + float64(x+1)*g.cellW,
				MaxY: g.bounds.MinY + float64(y+1)*g.cellH,
			}
			// outer edges match the point extent exactly
			if x == side-1 && g.bounds.MaxX > g.bounds.MinX {
				b.MaxX = g.bounds.MaxX
			}
			if y == side-1 && g.bounds.MaxY > g.bounds.MinY {
				b.MaxY = g.bounds.MaxY
			}
			g.sectors[i] = Sector{XCoord: x, YCoord: y, Name: sectorName(i), Bounds: b}
		}
	}

	for _, p := range points {
		x, y := g.Locate(p.X, p.Y)
		i := y*side + x
		g.members[i] = append(g.members[i], p.ID)
		g.sectors[i].ChildCount++
	}

	return g
}

func boundsOf(points []Point) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// cellSize keeps a degenerate extent from collapsing every cell to zero width
func cellSize(extent float64, side int) float64 {
	if extent <= 0 {
		return 1
	}
	return extent / float64(side)
}

func sectorName(i int) string {
	name := sectorNames[i%len(sectorNames)]
	if lap := i / len(sectorNames); lap > 0 {
		return fmt.Sprintf("%s %d", name, lap+1)
	}
	return name
}

func (g *Grid) Side() int {
	return g.side
}

func (g *Grid) Bounds() Bounds {
	return g.bounds
}

// Locate returns the sector coordinates holding (x, y). Points outside the
// grid are clamped to the nearest edge sector.
func (g *Grid) Locate(x, y float64) (int, int) {
	return locate(x, g.bounds.MinX, g.cellW, g.side), locate(y, g.bounds.MinY, g.cellH, g.side)
}

// locate agrees with the sector bounds even when the division rounds
// across a cell edge.
func locate(v, origin, cell float64, side int) int {
	i := int(math.Floor((v - origin) / cell))
	if i < 0 {
		return 0
	}
	if i >= side {
		return side - 1
	}
	if i > 0 && v < origin+float64(i)*cell {
		i--
	} else if i < side-1 && v >= origin+float64(i+1)*cell {
		i++
	}
	return i
}

// Sectors returns every sector in row-major order
func (g *Grid) Sectors() []Sector {
	out := make([]Sector, len(g.sectors))
	copy(out, g.sectors)
	return out
}

func (g *Grid) Sector(x, y int) (Sector, bool) {
	if x < 0 || y < 0 || x >= g.side || y >= g.side {
		return Sector{}, false
	}
	return g.sectors[y*g.side+x], true
}

// Members returns the ids of the points in sector (x, y), in insertion order
func (g *Grid) Members(x, y int) ([]uuid.UUID, bool) {
	if x < 0 || y < 0 || x >= g.side || y >= g.side {
		return nil, false
	}
	ids := g.members[y*g.side+x]
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	return out, true
}
