// Package randutil derives reproducible random sources for decks and bots.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Equal seeds
// yield equal shuffles.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Stream returns an independent source for the n-th consumer of a seed, so
// concurrent tables seeded from one value do not share a sequence.
func Stream(seed int64, n int) *rand.Rand {
	u := uint64(seed) ^ mix(uint64(n)+1)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64*uint64(n+2))))
}

// Seed returns seed, or a time-derived seed when seed is zero.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// splitmix64 finaliser.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
