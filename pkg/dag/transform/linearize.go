package transform

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/matzehuels/teasort/pkg/dag"
)

// ErrIncompleteTraversal is returned by [Linearize] when the emitted order is
// not a permutation of the graph's positions. It signals a defect in the
// traversal, never bad input.
var ErrIncompleteTraversal = errors.New("traversal did not emit every vertex exactly once")

// Vertex colours for the depth-first traversal.
const (
	white = iota // not yet discovered
	gray         // discovered, descendants still being explored
	black        // emitted
)

// Option configures optional behaviour of [Linearize].
type Option func(*options)

type options struct {
	onVisit func(id int)
	onExit  func(id int)
}

// WithOnVisit installs a pre-order hook called when a vertex turns gray.
func WithOnVisit(fn func(id int)) Option {
	return func(o *options) { o.onVisit = fn }
}

// WithOnExit installs a post-order hook called right before a vertex is
// appended to the order.
func WithOnExit(fn func(id int)) Option {
	return func(o *options) { o.onExit = fn }
}

// Traversal is the outcome of a full depth-first pass over a graph.
type Traversal struct {
	// Order lists vertex positions in post-order.
	Order []int

	// Roots is the number of depth-first trees, i.e. how many times a
	// traversal had to restart from an undiscovered vertex.
	Roots int

	// BackEdges counts edges into a gray vertex. Each one closes a cycle;
	// self-loops are included.
	BackEdges int

	// SkippedEdges counts every edge whose target was already discovered
	// (back, forward and cross edges).
	SkippedEdges int

	// MaxDepth is the deepest the work stack grew.
	MaxDepth int
}

// frame is one entry of the explicit work stack: a gray vertex and the index
// of the next neighbour to examine.
type frame struct {
	id   int
	next int
}

// Traverse runs a depth-first search over every vertex of g.
//
// Roots are chosen in increasing position order, skipping vertices that are
// already discovered. Neighbours are examined in insertion order and only
// white ones are entered, so cycles, duplicate edges and self-loops are
// tolerated. A vertex is emitted only after every vertex reachable from it
// through undiscovered neighbours has been emitted.
//
// The search uses an explicit stack rather than recursion, so depth is
// bounded by memory, not by the goroutine stack.
func Traverse[T cmp.Ordered](g *dag.Graph[T], opts ...Option) Traversal {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	n := g.Len()
	color := make([]uint8, n)
	res := Traversal{Order: make([]int, 0, n)}
	stack := make([]frame, 0, 16)

	push := func(id int) {
		color[id] = gray
		if o.onVisit != nil {
			o.onVisit(id)
		}
		stack = append(stack, frame{id: id})
		res.MaxDepth = max(res.MaxDepth, len(stack))
	}

	for root := 0; root < n; root++ {
		if color[root] != white {
			continue
		}
		res.Roots++
		push(root)

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := g.Children(top.id)

			descended := false
			for top.next < len(children) {
				child := children[top.next]
				top.next++
				switch color[child] {
				case white:
					push(child)
					descended = true
				case gray:
					res.BackEdges++
					res.SkippedEdges++
				default:
					res.SkippedEdges++
				}
				if descended {
					break
				}
			}
			if descended {
				continue
			}

			id := top.id
			stack = stack[:len(stack)-1]
			color[id] = black
			if o.onExit != nil {
				o.onExit(id)
			}
			res.Order = append(res.Order, id)
		}
	}
	return res
}

// Check verifies that the traversal emitted every one of n positions exactly
// once. It returns ErrIncompleteTraversal otherwise.
func (t Traversal) Check(n int) error {
	if len(t.Order) != n {
		return fmt.Errorf("%w: emitted %d of %d", ErrIncompleteTraversal, len(t.Order), n)
	}
	if !dag.IsPermutation(t.Order) {
		return fmt.Errorf("%w: order is not a permutation", ErrIncompleteTraversal)
	}
	return nil
}

// Linearize returns the post-order of a full depth-first traversal of g.
//
// The result always has length g.Len() and contains every position exactly
// once. Both properties are checked after the traversal; a violation returns
// ErrIncompleteTraversal.
func Linearize[T cmp.Ordered](g *dag.Graph[T], opts ...Option) ([]int, error) {
	res := Traverse(g, opts...)
	if err := res.Check(g.Len()); err != nil {
		return nil, err
	}
	return res.Order, nil
}
