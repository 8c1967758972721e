package plotgen

import (
	"math"
	"math/rand/v2"
)

// rngStream decorrelates the second PCG word from the seed.
const rngStream = 0x9e3779b97f4a7c15

// Rng is the deterministic random source handed to generators.
// The PCG sequence for a given seed is fixed, so output is reproducible
// across runs and platforms.
//
// Rng is not safe for concurrent use; give each goroutine its own.
type Rng struct {
	src  *rand.Rand
	seed uint64
}

// NewRng creates a random source for seed.
func NewRng(seed uint64) *Rng {
	return &Rng{
		src:  rand.New(rand.NewPCG(seed, seed^rngStream)),
		seed: seed,
	}
}

// Seed returns the seed the source was created with.
func (r *Rng) Seed() uint64 {
	return r.seed
}

// Float returns a value in [0, 1).
func (r *Rng) Float() float64 {
	return r.src.Float64()
}

// Range returns a value in [lo, hi).
func (r *Rng) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.src.Float64()
}

// Signed returns a value in [-1, 1).
func (r *Rng) Signed() float64 {
	return r.src.Float64()*2 - 1
}

// Angle returns an angle in [0, 2π).
func (r *Rng) Angle() float64 {
	return r.src.Float64() * 2 * math.Pi
}

// Chance reports true with probability p.
func (r *Rng) Chance(p float64) bool {
	return r.src.Float64() < p
}
