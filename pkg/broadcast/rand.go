package broadcast

import (
	"math/rand"
	"sync"
)

// Rand is the source of the simulator's randomness. It is pluggable and
// seedable so tests can force specific outcomes deterministically.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// lockedRand wraps math/rand with a mutex; the stock rand.Source is not safe
// for concurrent broadcasts.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand creates a seeded, concurrency-safe random source.
func NewRand(seed int64) Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
