package rng

import (
	"hash/fnv"
	"math/rand"

	"pitcheck/ports"
)

// StreamFactory derives independent deterministic rand streams from a base
// seed and a stream name, so reference generation and synthetic fixtures
// never share or perturb each other's state.
type StreamFactory struct{}

// NewStreamFactory creates a new deterministic stream factory
func NewStreamFactory() ports.RNG {
	return &StreamFactory{}
}

// Stream creates a generator whose state depends only on (name, seed)
func (f *StreamFactory) Stream(name string, seed int64) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(name))
	derived := int64(h.Sum64()) ^ seed
	return rand.New(rand.NewSource(derived))
}
