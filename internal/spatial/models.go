package spatial

import (
	"github.com/google/uuid"
)

// Point is one star's galactic position
type Point struct {
	ID uuid.UUID
	X  float64
	Y  float64
}

type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Sector is one cell of the square grid laid over the galaxy
type Sector struct {
	XCoord     int    `json:"x_coord"`
	YCoord     int    `json:"y_coord"`
	Name       string `json:"name"`
	Bounds     Bounds `json:"bounds"`
	ChildCount int    `json:"child_count"`
}
