// internal/rng/rng.go
package rng

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source draws uniform integers from a closed range.
type Source interface {
	// IntRange returns a uniform integer in [lo, hi]. lo must not exceed hi.
	IntRange(lo, hi int) int
}

// Seeded is a reproducible PCG-backed Source.
type Seeded struct {
	r *rand.Rand
}

// NewSeeded creates a Source that yields the same stream for the same seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{r: rand.New(rand.NewPCG(seed, seed^pcgStream))}
}

// IntRange returns a uniform integer in [lo, hi].
func (s *Seeded) IntRange(lo, hi int) int {
	return lo + s.r.IntN(hi-lo+1)
}

const pcgStream = 0xda3e39cb94b95bdb

// NewEntropySeed reads a 64-bit seed from the operating system.
// There is nothing sensible to do when the entropy source fails, so it panics.
func NewEntropySeed() uint64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("rng: entropy source exhausted: %v", err))
	}
	return binary.BigEndian.Uint64(buf[:])
}

// Derive mixes a master seed with batch and trial indexes (splitmix64),
// giving every trial its own independent generator seed.
func Derive(master uint64, batch, trial int) uint64 {
	z := master
	z = splitmix(z + uint64(batch)*0x9e3779b97f4a7c15)
	z = splitmix(z + uint64(trial)*0xbf58476d1ce4e5b9)
	return z
}

func splitmix(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
