package io

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/teasort/pkg/dag"
)

type graph[T cmp.Ordered] struct {
	Nodes []node[T] `json:"nodes"`
	Edges []edge    `json:"edges"`
}

type node[T cmp.Ordered] struct {
	ID     int  `json:"id"`
	Value  T    `json:"value"`
	Finish *int `json:"finish,omitempty"`
}

type edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// WriteJSON encodes g as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON[T cmp.Ordered](g *dag.Graph[T], w io.Writer) error {
	return WriteJSONWithOrder(g, nil, w)
}

// WriteJSONWithOrder is like [WriteJSON] but annotates every vertex with
// its index in order, typically the result of transform.Linearize. order
// must be nil or a permutation of g's positions.
func WriteJSONWithOrder[T cmp.Ordered](g *dag.Graph[T], order []int, w io.Writer) error {
	if order != nil && (len(order) != g.Len() || !dag.IsPermutation(order)) {
		return fmt.Errorf("order is not a permutation of %d positions", g.Len())
	}

	finish := make([]int, len(order))
	for i, id := range order {
		finish[id] = i
	}

	out := graph[T]{
		Nodes: make([]node[T], g.Len()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	for i, v := range g.Vertices() {
		nd := node[T]{ID: v.ID, Value: v.Value}
		if order != nil {
			nd.Finish = &finish[i]
		}
		out.Nodes[i] = nd
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{From: e.From, To: e.To})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON[T cmp.Ordered](g *dag.Graph[T], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
