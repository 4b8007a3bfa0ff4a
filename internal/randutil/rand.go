// Package randutil derives reproducible random sources from integer seeds.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
	deciderSalt   = 0x6a09e667f3bcc909
)

// New returns a *rand.Rand seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns a child seed for stream n of seed. Matches use it to seed
// each hand and the simulator to seed each match, so one top-level seed
// reproduces the whole run.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n+1)*goldenRatio64))
}

// DeriveDecider returns the seed for decider n. It comes from a
// salted copy of seed, so it never matches the shuffle seed of any hand.
func DeriveDecider(seed int64, n int) int64 {
	return Derive(int64(mix(uint64(seed)^deciderSalt)), n)
}

// Seed returns seed, or a time-derived seed when seed is zero.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return int64(mix(uint64(time.Now().UnixNano())))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
