package shared

import (
	"math/rand"
	"sync"
)

// Random is the source of chance for hit rolls, damage rolls, drop tables and
// production source effects. Float64 returns a value in [0,1); Intn returns a
// value in [0,n).
type Random interface {
	Float64() float64
	Intn(n int) int
}

// SeededRandom is a Random backed by math/rand with an explicit seed so a
// simulation run can be replayed.
type SeededRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRandom creates a deterministic Random from a seed
func NewSeededRandom(seed int64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *SeededRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *SeededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// SequenceRandom replays a fixed list of floats, cycling when exhausted.
// Intn derives its value from the next float. Used by tests to force hits,
// misses and effect rolls.
type SequenceRandom struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequenceRandom creates a SequenceRandom. With no values every roll is 0.
func NewSequenceRandom(values ...float64) *SequenceRandom {
	return &SequenceRandom{values: values}
}

func (r *SequenceRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

func (r *SequenceRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
