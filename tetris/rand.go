package tetris

import "math/rand/v2"

// Rand is the random source threaded through spawning and queue refills, so
// that a seeded source gives a reproducible game.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG-backed source seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
