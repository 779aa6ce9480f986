// Package io provides JSON import and export for hint graphs.
//
// # JSON Format
//
// A graph is an object with a "nodes" and an "edges" array. Node IDs are the
// positions 0..n-1 of the sequence the graph was sampled for; values keep
// their JSON type:
//
//	{
//	  "nodes": [
//	    {"id": 0, "value": 5},
//	    {"id": 1, "value": 3},
//	    {"id": 2, "value": 4, "finish": 0}
//	  ],
//	  "edges": [
//	    {"from": 0, "to": 1},
//	    {"from": 0, "to": 0}
//	  ]
//	}
//
// Edges are written in the order they appear in each source's neighbour
// list, so a round trip reproduces the exact traversal order. Self-loops
// and duplicate edges are preserved.
//
// The optional "finish" field carries a vertex's position in the post-order
// linearization when the graph was exported with [WriteJSONWithOrder]. It is
// informational and ignored on import.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	g, err := io.ImportJSON[int]("hints.json")
//
// Import checks that node IDs are exactly 0..n-1 and that every edge
// references a known node.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer.
package io
