package services

import "math/rand/v2"

// RNG is the randomness source for draws. Satisfied by a thin wrapper
// over math/rand/v2 in production and by preset sequences in tests.
type RNG interface {
	Intn(n int) int
}

type defaultRNG struct{}

func (defaultRNG) Intn(n int) int {
	return rand.IntN(n)
}

// NewRNG returns the default general-purpose random source. No
// seeding or determinism is required anywhere in the draw path.
func NewRNG() RNG {
	return defaultRNG{}
}
