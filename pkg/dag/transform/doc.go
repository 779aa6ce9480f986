// Package transform turns a positional hint graph into a linear order.
//
// # Linearization
//
// [Linearize] performs a depth-first traversal over every vertex, choosing
// roots in increasing position order, and emits vertices in post-order: a
// vertex appears only after everything reachable from it through
// undiscovered neighbours. For a hint graph whose edges point from larger to
// smaller values, post-order tends to place smaller values first.
//
// The traversal keeps an explicit work stack and a three-state colouring
// (white, gray, black) instead of recursing. Recursion depth would reach n
// on a path graph, and the explicit gray state makes cycles visible: an edge
// into a gray vertex is a back edge.
//
// # Diagnostics
//
// [Traverse] exposes the full [Traversal] record (order, number of roots,
// back edges, skipped edges, stack depth). [CountBackEdges] and [HasCycle]
// are shorthands used when reporting on sampled graphs.
//
// # Hooks
//
// [WithOnVisit] and [WithOnExit] observe discovery and emission without
// changing the result.
package transform
