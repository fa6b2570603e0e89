package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
	"time"
)

// Random is a seeded, mutex-guarded PCG generator. Two instances built from
// the same non-zero seed produce the same sequence.
type Random struct {
	rng  *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRandom creates a generator. A zero seed picks one from crypto/rand;
// Seed reports it so a run can be replayed.
func NewRandom(seed int64) *Random {
	actual := uint64(seed)
	if seed == 0 {
		actual = randomSeed()
	}
	return newPCG(actual, 0xDEADBEEF)
}

func newPCG(seed, salt uint64) *Random {
	return &Random{
		rng:  rand.New(rand.NewPCG(seed, seed^salt)),
		seed: seed,
	}
}

func randomSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Seed returns the seed used to initialize this RNG
func (r *Random) Seed() uint64 {
	return r.seed
}

// Fork derives an independent generator whose seed is drawn from r.
func (r *Random) Fork() *Random {
	r.mu.Lock()
	seed := r.rng.Uint64()
	r.mu.Unlock()
	return newPCG(seed, 0xCAFEBABE)
}

// ForkN derives one generator per worker, in order.
func (r *Random) ForkN(n int) []*Random {
	out := make([]*Random, n)
	for i := range out {
		out[i] = r.Fork()
	}
	return out
}

// IntN returns a pseudo-random int in [0, n), or 0 when n <= 0
func (r *Random) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// IntRange returns a pseudo-random int in [min, max]
func (r *Random) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + r.IntN(max-min+1)
}

// Int64N returns a pseudo-random int64 in [0, n), or 0 when n <= 0
func (r *Random) Int64N(n int64) int64 {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Int64N(n)
}

// Int64Range returns a pseudo-random int64 in [min, max]
func (r *Random) Int64Range(min, max int64) int64 {
	if min >= max {
		return min
	}
	return min + r.Int64N(max-min+1)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0)
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Bool returns a pseudo-random boolean
func (r *Random) Bool() bool {
	return r.IntN(2) == 1
}

// Probability returns true with probability p
func (r *Random) Probability(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// WeightedPick returns an index chosen in proportion to weights. With no
// positive weight every index is equally likely; an empty slice gives -1.
func (r *Random) WeightedPick(weights []int) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return r.IntN(len(weights))
	}

	target := r.IntN(total) + 1
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if target <= cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Duration returns a random duration in [min, max]
func (r *Random) Duration(min, max time.Duration) time.Duration {
	if min >= max {
		return min
	}
	return min + time.Duration(r.Int64N(int64(max-min+1)))
}

// Pick returns a random element of items, or the zero value when empty.
func Pick[T any](r *Random, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[r.IntN(len(items))]
}
