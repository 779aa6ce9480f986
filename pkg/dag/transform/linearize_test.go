package transform

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/teasort/pkg/dag"
)

func build(t *testing.T, n int, edges ...[2]int) *dag.Graph[int] {
	t.Helper()
	values := make([]int, n)
	for i := range values {
		values[i] = i
	}
	g := dag.New(values)
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%d, %d): %v", e[0], e[1], err)
		}
	}
	return g
}

func TestLinearize_NoEdges(t *testing.T) {
	g := build(t, 4)

	order, err := Linearize(g)
	if err != nil {
		t.Fatalf("Linearize() error: %v", err)
	}
	if !slices.Equal(order, []int{0, 1, 2, 3}) {
		t.Errorf("order = %v, want [0 1 2 3]", order)
	}
}

func TestLinearize_PostOrder(t *testing.T) {
	// 0 → 2 → 1, 3 isolated
	g := build(t, 4, [2]int{0, 2}, [2]int{2, 1})

	order, err := Linearize(g)
	if err != nil {
		t.Fatalf("Linearize() error: %v", err)
	}
	if !slices.Equal(order, []int{1, 2, 0, 3}) {
		t.Errorf("order = %v, want [1 2 0 3]", order)
	}
}

func TestLinearize_NeighbourOrder(t *testing.T) {
	// 0 → {3, 1}, 3 → 2: neighbours are explored in insertion order
	g := build(t, 4, [2]int{0, 3}, [2]int{0, 1}, [2]int{3, 2})

	order, err := Linearize(g)
	if err != nil {
		t.Fatalf("Linearize() error: %v", err)
	}
	if !slices.Equal(order, []int{2, 3, 1, 0}) {
		t.Errorf("order = %v, want [2 3 1 0]", order)
	}
}

func TestLinearize_Cycle(t *testing.T) {
	// 0 → 1 → 2 → 0
	g := build(t, 3, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0})

	order, err := Linearize(g)
	if err != nil {
		t.Fatalf("Linearize() error: %v", err)
	}
	if !slices.Equal(order, []int{2, 1, 0}) {
		t.Errorf("order = %v, want [2 1 0]", order)
	}
}

func TestLinearize_SelfLoopsAndDuplicates(t *testing.T) {
	g := build(t, 3,
		[2]int{0, 0},
		[2]int{1, 0}, [2]int{1, 0}, [2]int{1, 1},
		[2]int{2, 2},
	)

	order, err := Linearize(g)
	if err != nil {
		t.Fatalf("Linearize() error: %v", err)
	}
	if !slices.Equal(order, []int{0, 1, 2}) {
		t.Errorf("order = %v, want [0 1 2]", order)
	}
}

func TestLinearize_Empty(t *testing.T) {
	order, err := Linearize(build(t, 0))
	if err != nil {
		t.Fatalf("Linearize() error: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("order = %v, want empty", order)
	}
}

func TestLinearize_DeepPath(t *testing.T) {
	// Chain 0 → 1 → ... → n-1 rooted at 0; the stack grows to n.
	const n = 200_000
	g := build(t, n)
	for i := 0; i < n-1; i++ {
		_ = g.AddEdge(i, i+1)
	}

	res := Traverse(g)
	if len(res.Order) != n {
		t.Fatalf("len(Order) = %d, want %d", len(res.Order), n)
	}
	if res.MaxDepth != n {
		t.Errorf("MaxDepth = %d, want %d", res.MaxDepth, n)
	}
	if res.Order[0] != n-1 || res.Order[n-1] != 0 {
		t.Errorf("path should be emitted deepest first, got first=%d last=%d", res.Order[0], res.Order[n-1])
	}
}

func TestLinearize_RandomGraphsArePermutations(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7^0xdeadbeef))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.IntN(60)
		g := build(t, n)
		m := rng.IntN(4 * n)
		for i := 0; i < m; i++ {
			_ = g.AddEdge(rng.IntN(n), rng.IntN(n))
		}

		order, err := Linearize(g)
		if err != nil {
			t.Fatalf("trial %d: Linearize() error: %v", trial, err)
		}
		if len(order) != n || !dag.IsPermutation(order) {
			t.Fatalf("trial %d: order %v is not a permutation of %d positions", trial, order, n)
		}

		// The traversal does not mutate the graph, so a second pass agrees.
		again, _ := Linearize(g)
		if !slices.Equal(order, again) {
			t.Fatalf("trial %d: repeated traversal differs", trial)
		}
	}
}

func TestLinearize_PostOrderProperty(t *testing.T) {
	// For every tree edge u → v, v is emitted before u.
	rng := rand.New(rand.NewPCG(11, 11^0xdeadbeef))
	n := 50
	g := build(t, n)
	for i := 0; i < 150; i++ {
		_ = g.AddEdge(rng.IntN(n), rng.IntN(n))
	}

	parent := make(map[int]int)
	var stack []int
	visit := func(id int) {
		if len(stack) > 0 {
			parent[id] = stack[len(stack)-1]
		}
		stack = append(stack, id)
	}
	exit := func(id int) { stack = stack[:len(stack)-1] }

	order, err := Linearize(g, WithOnVisit(visit), WithOnExit(exit))
	if err != nil {
		t.Fatalf("Linearize() error: %v", err)
	}

	pos := make([]int, n)
	for i, id := range order {
		pos[id] = i
	}
	for child, p := range parent {
		if pos[child] >= pos[p] {
			t.Errorf("child %d emitted at %d, after parent %d at %d", child, pos[child], p, pos[p])
		}
	}
}

func TestTraverse_Hooks(t *testing.T) {
	g := build(t, 3, [2]int{0, 1})

	var visited, exited []int
	res := Traverse(g,
		WithOnVisit(func(id int) { visited = append(visited, id) }),
		WithOnExit(func(id int) { exited = append(exited, id) }),
	)

	if !slices.Equal(visited, []int{0, 1, 2}) {
		t.Errorf("visited = %v, want [0 1 2]", visited)
	}
	if !slices.Equal(exited, res.Order) {
		t.Errorf("exit hook order %v should match Order %v", exited, res.Order)
	}
	if res.Roots != 2 {
		t.Errorf("Roots = %d, want 2", res.Roots)
	}
}

func TestTraverse_SkippedEdges(t *testing.T) {
	// 0 → 1, 0 → 1 (duplicate: forward), 1 → 0 (back), 2 → 1 (cross)
	g := build(t, 3, [2]int{0, 1}, [2]int{0, 1}, [2]int{1, 0}, [2]int{2, 1})

	res := Traverse(g)
	if res.BackEdges != 1 {
		t.Errorf("BackEdges = %d, want 1", res.BackEdges)
	}
	if res.SkippedEdges != 3 {
		t.Errorf("SkippedEdges = %d, want 3", res.SkippedEdges)
	}
}

func TestTraversalCheck(t *testing.T) {
	tests := []struct {
		name    string
		order   []int
		n       int
		wantErr bool
	}{
		{"complete", []int{1, 0, 2}, 3, false},
		{"empty", nil, 0, false},
		{"missing vertex", []int{1, 0}, 3, true},
		{"duplicate vertex", []int{1, 1, 0}, 3, true},
		{"out of range", []int{0, 1, 3}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Traversal{Order: tt.order}.Check(tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrIncompleteTraversal) {
				t.Errorf("Check() error = %v, want ErrIncompleteTraversal", err)
			}
		})
	}
}
