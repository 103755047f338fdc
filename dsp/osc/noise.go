package osc

import "math/rand"

// Noise generates uniformly distributed white noise in [-1, 1).
//
// The generator is seeded explicitly so renders are reproducible.
type Noise struct {
	seed int64
	rng  *rand.Rand
}

// NewNoise returns a noise generator seeded with seed.
func NewNoise(seed int64) *Noise {
	return &Noise{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// NextSample returns the next noise value.
func (n *Noise) NextSample() float64 {
	return n.rng.Float64()*2 - 1
}

// Unipolar returns the next noise value mapped to [0, 1).
func (n *Noise) Unipolar() float64 {
	return n.rng.Float64()
}

// Reset reseeds the generator so the sequence restarts.
func (n *Noise) Reset() {
	n.rng.Seed(n.seed)
}
