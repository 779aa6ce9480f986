package nodelink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/teasort/pkg/dag"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Order is a post-order linearization of the graph (as returned by
	// transform.Linearize). When set, labels include the finish index and
	// back edges are highlighted. It is ignored unless it is a permutation
	// of the graph's positions.
	Order []int

	// Detailed includes the out-degree in node labels.
	Detailed bool
}

// ToDOT converts a hint graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT[T cmp.Ordered](g *dag.Graph[T], opts Options) string {
	var finish []int
	if len(opts.Order) == g.Len() && dag.IsPermutation(opts.Order) {
		finish = make([]int, g.Len())
		for i, id := range opts.Order {
			finish[id] = i
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		label := fmtLabel(v, finish, opts.Detailed)
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", v.ID, label)
	}

	buf.WriteString("\n")
	for _, e := range collapse(g.Edges()) {
		attrs := fmtEdgeAttrs(e, finish)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// multiEdge is an edge with its multiplicity.
type multiEdge struct {
	dag.Edge
	count int
}

// collapse merges repeated edges, keeping first-occurrence order.
func collapse(edges []dag.Edge) []multiEdge {
	index := make(map[dag.Edge]int, len(edges))
	var out []multiEdge
	for _, e := range edges {
		if i, ok := index[e]; ok {
			out[i].count++
			continue
		}
		index[e] = len(out)
		out = append(out, multiEdge{Edge: e, count: 1})
	}
	return out
}

func fmtLabel[T cmp.Ordered](v dag.Vertex[T], finish []int, detailed bool) string {
	parts := []string{fmt.Sprintf("#%d: %v", v.ID, v.Value)}
	if finish != nil {
		parts = append(parts, fmt.Sprintf("finish: %d", finish[v.ID]))
	}
	if detailed {
		parts = append(parts, fmt.Sprintf("out: %d", len(v.Neighbours)))
	}
	return strings.Join(parts, "\n")
}

func fmtEdgeAttrs(e multiEdge, finish []int) []string {
	var attrs []string
	switch {
	case e.From == e.To:
		attrs = append(attrs, "style=dashed", "color=grey")
	case finish != nil && finish[e.To] > finish[e.From]:
		// A post-order places every tree, forward and cross edge target
		// before its source. Only back edges point forward in it.
		attrs = append(attrs, "color=red", "penwidth=2")
	}
	if e.count > 1 {
		attrs = append(attrs, fmt.Sprintf("label=\"×%d\"", e.count))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's <svg> tag with one whose viewBox
// starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
