// Package dag provides the positional directed graph that teasort builds over
// the sequence being sorted.
//
// # Overview
//
// Every position of the input becomes one vertex. Vertex i carries the id i
// and a copy of the element at position i. Edges are directed hints: for the
// graphs built by [github.com/matzehuels/teasort/pkg/teasort], an edge x → y
// means the value at x is greater than or equal to the value at y.
//
// Despite the package name, a sampled graph is not guaranteed to be acyclic.
// Equal values and self-loops close cycles, and the traversal in the
// [transform] subpackage tolerates them.
//
// # Basic Usage
//
// Create a graph with [New] and add edges with [Graph.AddEdge]. Endpoints are
// checked against the vertex count and rejected with an error when out of
// range:
//
//	g := dag.New([]int{5, 3, 4})
//	_ = g.AddEdge(0, 1) // 5 → 3
//	_ = g.AddEdge(2, 1) // 4 → 3
//	err := g.AddEdge(0, 7) // ErrUnknownTargetNode
//
// Query the structure with [Graph.Children], [Graph.OutDegree],
// [Graph.Edges] and [Graph.SelfLoops].
//
// # Ownership
//
// The graph owns a contiguous slice of vertices. Values are copied in at
// construction, so mutating the caller's buffer afterwards does not affect
// the graph. There is no edge removal: a graph is built once, traversed, and
// discarded.
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. Read-only traversals
// of a fully built graph can run in parallel.
//
// [transform]: github.com/matzehuels/teasort/pkg/dag/transform
package dag
