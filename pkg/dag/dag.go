package dag

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNegativeSize is returned by [NewSize] when the requested vertex count
	// is negative.
	ErrNegativeSize = errors.New("graph size must not be negative")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the source
	// position is outside [0, n).
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the target
	// position is outside [0, n).
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when a neighbour
	// list references a position that doesn't exist. This indicates graph
	// corruption, since AddEdge never admits such an edge.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")
)

// Vertex is one position of the sequence being sorted.
//
// ID is the original position index and never changes after construction.
// Value is a copy of the element stored at that position, so the graph holds
// no reference into the caller's buffer. Neighbours lists the targets of the
// vertex's outgoing edges in insertion order; duplicates and self-loops are
// kept as inserted.
type Vertex[T cmp.Ordered] struct {
	ID         int
	Value      T
	Neighbours []int
}

// Edge is a directed hint From → To. For sampled graphs it means the value at
// From is greater than or equal to the value at To.
type Edge struct {
	From int
	To   int
}

// Graph is a fixed-size directed graph with one vertex per input position.
//
// The graph owns a contiguous slice of vertices indexed by position. It is
// write-once-then-read: edges can be added but never removed. Duplicate edges
// and self-loops are permitted and only add redundant traversal work.
//
// The zero value is an empty graph with no vertices. Graph is not safe for
// concurrent use without external synchronization.
type Graph[T cmp.Ordered] struct {
	vertices []Vertex[T]
	edges    int
}

// New creates a graph with one vertex per element of values. Vertex i gets
// ID i and a copy of values[i]. The values slice is not retained.
func New[T cmp.Ordered](values []T) *Graph[T] {
	g := &Graph[T]{vertices: make([]Vertex[T], len(values))}
	for i, v := range values {
		g.vertices[i] = Vertex[T]{ID: i, Value: v}
	}
	return g
}

// NewSize creates a graph with n vertices holding zero values.
// Returns ErrNegativeSize if n is negative.
func NewSize[T cmp.Ordered](n int) (*Graph[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, n)
	}
	g := &Graph[T]{vertices: make([]Vertex[T], n)}
	for i := range g.vertices {
		g.vertices[i].ID = i
	}
	return g, nil
}

// AddEdge appends y to x's neighbour list.
//
// Both endpoints must satisfy 0 ≤ x, y < Len(). Returns ErrUnknownSourceNode
// or ErrUnknownTargetNode (wrapped with the offending index) otherwise, and
// leaves the graph unchanged. x == y is allowed and records a self-loop.
func (g *Graph[T]) AddEdge(x, y int) error {
	if !g.inRange(x) {
		return fmt.Errorf("%w: %d (size %d)", ErrUnknownSourceNode, x, len(g.vertices))
	}
	if !g.inRange(y) {
		return fmt.Errorf("%w: %d (size %d)", ErrUnknownTargetNode, y, len(g.vertices))
	}
	g.vertices[x].Neighbours = append(g.vertices[x].Neighbours, y)
	g.edges++
	return nil
}

func (g *Graph[T]) inRange(i int) bool { return i >= 0 && i < len(g.vertices) }

// Len returns the number of vertices.
func (g *Graph[T]) Len() int { return len(g.vertices) }

// EdgeCount returns the number of edges added, counting duplicates and
// self-loops.
func (g *Graph[T]) EdgeCount() int { return g.edges }

// Vertex returns a pointer to the vertex at position i and true, or nil and
// false if i is out of range. The pointer refers to the graph's own storage;
// callers must not modify Neighbours.
func (g *Graph[T]) Vertex(i int) (*Vertex[T], bool) {
	if !g.inRange(i) {
		return nil, false
	}
	return &g.vertices[i], true
}

// Vertices returns the vertex slice in position order.
// The returned slice should be treated as a read-only view.
func (g *Graph[T]) Vertices() []Vertex[T] { return g.vertices }

// Values returns a copy of the vertex payloads in position order.
func (g *Graph[T]) Values() []T {
	out := make([]T, len(g.vertices))
	for i := range g.vertices {
		out[i] = g.vertices[i].Value
	}
	return out
}

// Value returns the payload of vertex i. It panics if i is out of range, like
// a slice index would.
func (g *Graph[T]) Value(i int) T { return g.vertices[i].Value }

// Children returns the neighbour positions of vertex i in insertion order.
// Returns nil if i is out of range. The returned slice should not be modified.
func (g *Graph[T]) Children(i int) []int {
	if !g.inRange(i) {
		return nil
	}
	return g.vertices[i].Neighbours
}

// OutDegree returns the number of outgoing edges of vertex i, or 0 if i is
// out of range.
func (g *Graph[T]) OutDegree(i int) int { return len(g.Children(i)) }

// Edges returns all edges ordered by source position, then insertion order.
func (g *Graph[T]) Edges() []Edge {
	edges := make([]Edge, 0, g.edges)
	for i := range g.vertices {
		for _, to := range g.vertices[i].Neighbours {
			edges = append(edges, Edge{From: i, To: to})
		}
	}
	return edges
}

// SelfLoops returns the number of edges whose endpoints coincide.
func (g *Graph[T]) SelfLoops() int {
	n := 0
	for i := range g.vertices {
		for _, to := range g.vertices[i].Neighbours {
			if to == i {
				n++
			}
		}
	}
	return n
}

// Sinks returns the positions of vertices with no outgoing edges, ascending.
func (g *Graph[T]) Sinks() []int {
	var sinks []int
	for i := range g.vertices {
		if len(g.vertices[i].Neighbours) == 0 {
			sinks = append(sinks, i)
		}
	}
	return sinks
}

// Clone returns a deep copy of the graph.
func (g *Graph[T]) Clone() *Graph[T] {
	c := &Graph[T]{vertices: make([]Vertex[T], len(g.vertices)), edges: g.edges}
	for i, v := range g.vertices {
		c.vertices[i] = Vertex[T]{ID: v.ID, Value: v.Value, Neighbours: slices.Clone(v.Neighbours)}
	}
	return c
}

// Validate checks that every vertex ID matches its position and that every
// neighbour is a valid position. Returns ErrInvalidEdgeEndpoint otherwise.
func (g *Graph[T]) Validate() error {
	for i := range g.vertices {
		if g.vertices[i].ID != i {
			return fmt.Errorf("%w: vertex at %d has id %d", ErrInvalidEdgeEndpoint, i, g.vertices[i].ID)
		}
		for _, to := range g.vertices[i].Neighbours {
			if !g.inRange(to) {
				return fmt.Errorf("%w: %d -> %d", ErrInvalidEdgeEndpoint, i, to)
			}
		}
	}
	return nil
}

// IsPermutation reports whether order contains every position 0..n-1 exactly
// once, where n is len(order).
func IsPermutation(order []int) bool {
	seen := make([]bool, len(order))
	for _, id := range order {
		if id < 0 || id >= len(order) || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
