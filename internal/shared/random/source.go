package random

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand/v2"

	"starforge/internal/shared/errors"

	"github.com/google/uuid"
)

// Source is a seeded random stream owned by exactly one draw sequence
// (one star, one planetary system). It is not safe for concurrent use.
type Source struct {
	*rand.Rand
	chacha *rand.ChaCha8
}

func New(seed [32]byte) *Source {
	chacha := rand.NewChaCha8(seed)
	return &Source{
		Rand:   rand.New(chacha),
		chacha: chacha,
	}
}

// Derive returns a source whose seed is a hash of the universe seed, a salt
// naming the draw sequence, and the index of the item it generates.
func Derive(seed int64, salt string, index int) *Source {
	data := make([]byte, 16, 16+len(salt))
	binary.BigEndian.PutUint64(data[0:8], uint64(seed))
	binary.BigEndian.PutUint64(data[8:16], uint64(index))
	data = append(data, salt...)
	return New(sha256.Sum256(data))
}

// Read fills p from the underlying ChaCha8 stream
func (s *Source) Read(p []byte) (int, error) {
	return s.chacha.Read(p)
}

// UUID draws a version 4 UUID from the stream
func (s *Source) UUID() uuid.UUID {
	return uuid.Must(uuid.NewRandomFromReader(s))
}

// IntInclusive draws uniformly from [min, max]
func (s *Source) IntInclusive(min, max int) (int, error) {
	if min > max {
		return 0, errors.Configurationf("empty integer range [%d, %d]", min, max)
	}
	return min + s.IntN(max-min+1), nil
}

// Float draws uniformly from the half-open range [min, max)
func (s *Source) Float(min, max float64) (float64, error) {
	if !(min < max) || math.IsInf(max-min, 0) {
		return 0, errors.Configurationf("empty float range [%g, %g)", min, max)
	}
	return min + (max-min)*s.Float64(), nil
}

// FloatInclusive draws uniformly from [min, max]; a degenerate range yields min
func (s *Source) FloatInclusive(min, max float64) (float64, error) {
	if !(min <= max) || math.IsInf(max-min, 0) {
		return 0, errors.Configurationf("empty float range [%g, %g]", min, max)
	}
	return min + (max-min)*s.Float64(), nil
}

// LogNormal draws exp(N(mu, sigma))
func (s *Source) LogNormal(mu, sigma float64) (float64, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) || math.IsNaN(mu) || math.IsInf(mu, 0) {
		return 0, errors.Configurationf("invalid log-normal parameters mu=%g sigma=%g", mu, sigma)
	}
	return math.Exp(mu + sigma*s.NormFloat64()), nil
}
