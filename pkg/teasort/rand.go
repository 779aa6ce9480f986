package teasort

import (
	"math/rand/v2"
	"sync"
)

// Source supplies uniform random integers. IntN returns a value in [0, n)
// and may panic if n <= 0, matching [rand.Rand.IntN].
//
// *rand.Rand from math/rand/v2 satisfies Source.
type Source interface {
	IntN(n int) int
}

// NewSource returns a deterministic PCG-backed source. Equal seeds yield
// equal draw sequences.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// NewRandomSource returns a source seeded from the runtime's random state.
// Use it when reproducibility is not needed.
func NewRandomSource() *rand.Rand {
	return NewSource(rand.Uint64())
}

// LockedSource serializes access to a wrapped Source so it can be shared
// between goroutines.
type LockedSource struct {
	mu  sync.Mutex
	src Source
}

// NewLockedSource wraps src. The caller must not use src directly afterwards.
func NewLockedSource(src Source) *LockedSource {
	return &LockedSource{src: src}
}

// IntN implements Source.
func (l *LockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}
