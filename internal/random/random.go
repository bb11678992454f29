// Package random provides the randomness source used for loot rolls.
//
// Callers depend on the Roller interface so tests can inject a fixed
// sequence of draws; production wiring uses a seeded, mutex-guarded Source.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Roller draws uniform integers
type Roller interface {
	// Between returns a uniform integer in [min, max] inclusive.
	// When min > max it returns min.
	Between(min, max int) int
}

// Source is a Roller backed by a seeded PCG generator. Safe for concurrent use.
type Source struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed uint64
}

// NewSource creates a Source from seed. The same seed always yields the
// same sequence of draws.
func NewSource(seed uint64) *Source {
	return &Source{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // Game logic randomness, not security critical
		seed: seed,
	}
}

// NewSourceFromConfig creates a Source from a configured seed, falling back
// to a crypto seed when seed is 0.
func NewSourceFromConfig(seed uint64) (*Source, error) {
	if seed != 0 {
		return NewSource(seed), nil
	}
	s, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewSource(s), nil
}

// Seed returns the seed the source was created with
func (s *Source) Seed() uint64 {
	return s.seed
}

// Between returns a uniform integer in [min, max] inclusive
func (s *Source) Between(min, max int) int {
	if min >= max {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.IntN(max-min+1)
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
