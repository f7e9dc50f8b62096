package galaxy

// Config holds the spiral placement parameters for one generation call
type Config struct {
	Seed         int64   `json:"seed"`
	NumStars     int     `json:"num_stars"`
	GalaxyRadius float64 `json:"galaxy_radius"`
	ArmStrength  float64 `json:"arm_strength"`
	ArmCount     int     `json:"arm_count"`
	NoiseScale   float64 `json:"noise_scale"`
}

// Position is a star's coordinate in the galactic plane
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
