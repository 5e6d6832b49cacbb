package ports

import (
	"math/rand"
)

// RNG provides seeded random number streams for deterministic operations.
// Reference series generated from the same seed must be bit-identical
// across runs, so every consumer draws from a named stream instead of a
// shared ambient source.
type RNG interface {
	// Stream creates a deterministic generator for a named operation.
	// The same (name, seed) pair always yields the same stream.
	Stream(name string, seed int64) *rand.Rand
}
