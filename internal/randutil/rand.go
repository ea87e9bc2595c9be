// Package randutil builds the seeded random sources used for shuffling and bots.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// PCG needs two 64-bit seeds; both are derived from the one value so that
// a single logged seed reproduces a whole game.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed resolves an optional seed, falling back to the wall clock, and
// returns both the seed actually used and the RNG built from it.
func Seed(seed *int64) (int64, *rand.Rand) {
	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}
	return s, New(s)
}

// Derive returns a child RNG for component n. Each bot in a spawned game
// gets its own stream so that they do not share state across goroutines.
func Derive(seed int64, n int) *rand.Rand {
	return New(seed + int64(n)*int64(goldenRatio64>>1))
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
