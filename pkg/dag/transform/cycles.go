package transform

import (
	"cmp"

	"github.com/matzehuels/teasort/pkg/dag"
)

// CountBackEdges returns how many edges of g point at a vertex that is still
// being explored when the edge is examined. Every such edge closes a directed
// cycle. Self-loops count as back edges.
//
// The count depends on root order and neighbour order, and is the one the
// linearizer itself observes.
func CountBackEdges[T cmp.Ordered](g *dag.Graph[T]) int {
	return Traverse(g).BackEdges
}

// HasCycle reports whether g contains a directed cycle, self-loops included.
func HasCycle[T cmp.Ordered](g *dag.Graph[T]) bool {
	return CountBackEdges(g) > 0
}
