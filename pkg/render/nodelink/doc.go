// Package nodelink renders hint graphs as node-link diagrams.
//
// # Overview
//
// Each position of the sorted sequence becomes a box labelled with its
// position and value; each hint edge becomes an arrow from the larger value
// to the smaller one. Self-loops are drawn dashed and grey. Repeated edges
// between the same pair are drawn once with a multiplicity label.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Order: a post-order linearization of the graph. Each box then shows
//     its finish index, and edges that the linearization could not honour
//     (back edges, which close a cycle) are drawn in red.
//   - Detailed: adds the out-degree to every label.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is needed.
package nodelink
