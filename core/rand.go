package core

import "math/rand/v2"

// Rand is the randomness the simulation draws from
// *rand.Rand satisfies it; tests substitute fixed sequences
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a seeded PCG source so runs with the same seed replay exactly
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// Between returns a uniform value in [lo, hi)
func Between(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
