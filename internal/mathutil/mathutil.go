// Package mathutil provides scalar helpers shared by the network code.
package mathutil

import (
	"errors"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptyInput is returned for reductions over an empty collection.
var ErrEmptyInput = errors.New("empty input")

// ArgMax returns the index of the first strictly maximal element of v.
// Ties resolve to the earliest index.
func ArgMax(v []float64) (int, error) {
	if len(v) == 0 {
		return 0, ErrEmptyInput
	}
	return floats.MaxIdx(v), nil
}

// RandomUniform returns a value drawn uniformly from [lo, hi).
func RandomUniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// NewRand returns a PCG-backed generator. A zero seed picks a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
