// Package random isolates every source of randomness in the engine so tests
// can replay fixed sequences.
package random

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Source yields uniform values. Float64 is in [0,1); IntN is in [0,n).
type Source interface {
	Float64() float64
	IntN(n int) int
}

// New returns a PCG-backed source. A zero seed derives one from the clock.
func New(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &locked{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// Between draws uniformly from [lo, hi).
func Between(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Sequence replays a fixed cycle of values in [0,1).
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequence cycles through vals. An empty sequence always yields 0.
func NewSequence(vals ...float64) *Sequence {
	return &Sequence{values: vals}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// IntN scales the next value into [0,n).
func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		panic("random: IntN called with non-positive n")
	}
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Normal draws from N(mean, std) using the Box-Muller transform.
func Normal(src Source, mean, std float64) float64 {
	u1 := 1 - src.Float64() // (0,1]
	u2 := src.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + std*z
}
