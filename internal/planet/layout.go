package planet

import (
	"math"

	"github.com/google/uuid"
)

// Placement is a body's position on a system map, in meters from the star
type Placement struct {
	BodyID      uuid.UUID `json:"body_id"`
	Type        BodyType  `json:"type"`
	Radius      float64   `json:"radius"`
	OrbitRadius float64   `json:"orbit_radius"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	CenterX     float64   `json:"center_x"`
	CenterY     float64   `json:"center_y"`
	Depth       int       `json:"depth"`
}

// Layout places bodies breadth-first by capture depth: bodies orbiting the
// star first, then every body whose parent is already placed, offset by the
// parent's position. Bodies whose parent is not in the set are placed around
// the star after everything else.
func Layout(bodies []Body) []Placement {
	placements := make([]Placement, 0, len(bodies))
	placed := make(map[uuid.UUID]int, len(bodies))

	for _, b := range bodies {
		if b.Orbit.HasParent() {
			continue
		}
		placed[b.ID] = len(placements)
		placements = append(placements, place(b, 0, 0, 0))
	}

	for depth := 1; len(placements) < len(bodies); depth++ {
		var layer []Placement
		for _, b := range bodies {
			if _, done := placed[b.ID]; done || !b.Orbit.HasParent() {
				continue
			}
			p, ok := placed[*b.Orbit.Parent]
			if !ok {
				continue
			}
			parent := placements[p]
			layer = append(layer, place(b, parent.X, parent.Y, depth))
		}

		if len(layer) == 0 {
			break
		}
		for _, pl := range layer {
			placed[pl.BodyID] = len(placements)
			placements = append(placements, pl)
		}
	}

	for _, b := range bodies {
		if _, done := placed[b.ID]; !done {
			placed[b.ID] = len(placements)
			placements = append(placements, place(b, 0, 0, 0))
		}
	}

	return placements
}

func place(b Body, cx, cy float64, depth int) Placement {
	return Placement{
		BodyID:      b.ID,
		Type:        b.Type,
		Radius:      b.Radius,
		OrbitRadius: b.Orbit.Radius,
		X:           cx + b.Orbit.Radius*math.Cos(b.Orbit.Position),
		Y:           cy + b.Orbit.Radius*math.Sin(b.Orbit.Position),
		CenterX:     cx,
		CenterY:     cy,
		Depth:       depth,
	}
}
