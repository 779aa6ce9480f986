package teasort

import (
	"cmp"
	"math/bits"

	"github.com/matzehuels/teasort/pkg/dag"
)

// Log2 returns ⌊log2 n⌋ for n >= 1 and 0 otherwise.
func Log2(n int) int {
	if n < 1 {
		return 0
	}
	return bits.Len(uint(n)) - 1
}

// EdgeBudget returns the number of edges sampled for a sequence of length n:
// 2·n·⌊log2 n⌋. It is 0 for n < 2.
func EdgeBudget(n int) uint64 {
	if n < 2 {
		return 0
	}
	return 2 * uint64(n) * uint64(Log2(n))
}

// SampleEdges adds m random hint edges to g.
//
// Each draw picks two positions x and y independently and uniformly from
// [0, n), with replacement. If the value at y is greater than the value at x
// the two are swapped, and the edge x → y is added. Every edge therefore
// points from a value to one that is not larger. Self-loops (x == y) and
// duplicate edges are kept.
//
// rng is called exactly 2·m times. A graph with no vertices gets no edges.
func SampleEdges[T cmp.Ordered](g *dag.Graph[T], rng Source, m uint64) error {
	n := g.Len()
	if n == 0 {
		return nil
	}
	for range m {
		x, y := rng.IntN(n), rng.IntN(n)
		if g.Value(y) > g.Value(x) {
			x, y = y, x
		}
		if err := g.AddEdge(x, y); err != nil {
			return err
		}
	}
	return nil
}
