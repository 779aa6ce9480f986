package io

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/teasort/pkg/dag"
)

// ErrInvalidNodeID is returned by [ReadJSON] when node IDs are not exactly
// the positions 0..n-1.
var ErrInvalidNodeID = errors.New("invalid node id")

// ReadJSON decodes a JSON hint graph from r.
//
// Nodes may appear in any order but their IDs must be exactly 0..n-1.
// Edges are added in input order, so neighbour lists come back in the order
// they were exported.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or a value has the wrong type for T
//   - A node ID is out of range or appears twice ([ErrInvalidNodeID])
//   - An edge references an unknown node ID
//
// Errors are wrapped with context describing which node or edge caused the
// problem; the dag sentinel errors can be matched with errors.Is. ReadJSON
// does not close r.
func ReadJSON[T cmp.Ordered](r io.Reader) (*dag.Graph[T], error) {
	var data graph[T]
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	n := len(data.Nodes)
	values := make([]T, n)
	seen := make([]bool, n)
	for _, nd := range data.Nodes {
		if nd.ID < 0 || nd.ID >= n {
			return nil, fmt.Errorf("node %d: %w: ids must be 0..%d", nd.ID, ErrInvalidNodeID, n-1)
		}
		if seen[nd.ID] {
			return nil, fmt.Errorf("node %d: %w: duplicate", nd.ID, ErrInvalidNodeID)
		}
		seen[nd.ID] = true
		values[nd.ID] = nd.Value
	}

	g := dag.New(values)
	for _, e := range data.Edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("edge %d->%d: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// It returns the same validation errors as [ReadJSON], wrapped with the
// file path.
func ImportJSON[T cmp.Ordered](path string) (*dag.Graph[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, err := ReadJSON[T](f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
