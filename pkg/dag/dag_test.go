package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	values := []int{4, 2, 9}
	g := New(values)

	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}
	for i, v := range g.Vertices() {
		if v.ID != i {
			t.Errorf("vertex %d has ID %d", i, v.ID)
		}
		if v.Value != values[i] {
			t.Errorf("vertex %d Value = %d, want %d", i, v.Value, values[i])
		}
		if len(v.Neighbours) != 0 {
			t.Errorf("vertex %d should start with no neighbours", i)
		}
	}
}

func TestNew_CopiesValues(t *testing.T) {
	values := []int{1, 2, 3}
	g := New(values)
	values[0] = 100

	if g.Value(0) != 1 {
		t.Errorf("Value(0) = %d, graph should not alias the input buffer", g.Value(0))
	}
}

func TestNew_Empty(t *testing.T) {
	g := New[int](nil)
	if g.Len() != 0 || g.EdgeCount() != 0 {
		t.Errorf("empty graph: Len=%d EdgeCount=%d", g.Len(), g.EdgeCount())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() on empty graph: %v", err)
	}
}

func TestNewSize(t *testing.T) {
	g, err := NewSize[float64](4)
	if err != nil {
		t.Fatalf("NewSize(4) error: %v", err)
	}
	if g.Len() != 4 {
		t.Errorf("Len() = %d, want 4", g.Len())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}

	if _, err := NewSize[int](-1); !errors.Is(err, ErrNegativeSize) {
		t.Errorf("NewSize(-1) error = %v, want ErrNegativeSize", err)
	}
}

func TestAddEdge(t *testing.T) {
	g := New([]int{1, 2, 3})

	if err := g.AddEdge(2, 0); err != nil {
		t.Fatalf("AddEdge(2, 0) error: %v", err)
	}
	if err := g.AddEdge(2, 1); err != nil {
		t.Fatalf("AddEdge(2, 1) error: %v", err)
	}

	if got := g.Children(2); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("Children(2) = %v, want [0 1]", got)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestAddEdge_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want error
	}{
		{"source too large", 3, 0, ErrUnknownSourceNode},
		{"source negative", -1, 0, ErrUnknownSourceNode},
		{"target too large", 0, 3, ErrUnknownTargetNode},
		{"target negative", 0, -5, ErrUnknownTargetNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New([]int{1, 2, 3})
			err := g.AddEdge(tt.x, tt.y)
			if !errors.Is(err, tt.want) {
				t.Errorf("AddEdge(%d, %d) error = %v, want %v", tt.x, tt.y, err, tt.want)
			}
			if g.EdgeCount() != 0 {
				t.Errorf("failed AddEdge should not change the graph, EdgeCount = %d", g.EdgeCount())
			}
		})
	}
}

func TestAddEdge_DuplicatesAndSelfLoops(t *testing.T) {
	g := New([]int{1, 1})
	_ = g.AddEdge(0, 1)
	_ = g.AddEdge(0, 1)
	_ = g.AddEdge(1, 1)

	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
	if g.OutDegree(0) != 2 {
		t.Errorf("OutDegree(0) = %d, want 2", g.OutDegree(0))
	}
	if g.SelfLoops() != 1 {
		t.Errorf("SelfLoops() = %d, want 1", g.SelfLoops())
	}
}

func TestEdges(t *testing.T) {
	g := New([]int{1, 2, 3})
	_ = g.AddEdge(2, 1)
	_ = g.AddEdge(0, 0)
	_ = g.AddEdge(2, 0)

	want := []Edge{{0, 0}, {2, 1}, {2, 0}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestVertex(t *testing.T) {
	g := New([]string{"x", "y"})

	v, ok := g.Vertex(1)
	if !ok || v.Value != "y" {
		t.Errorf("Vertex(1) = %v, %v", v, ok)
	}
	if _, ok := g.Vertex(2); ok {
		t.Error("Vertex(2) should not exist")
	}
	if g.Children(9) != nil {
		t.Error("Children of a missing vertex should be nil")
	}
	if g.OutDegree(-1) != 0 {
		t.Error("OutDegree of a missing vertex should be 0")
	}
}

func TestClone(t *testing.T) {
	g := New([]int{3, 1})
	_ = g.AddEdge(0, 1)

	c := g.Clone()
	_ = c.AddEdge(1, 0)

	if g.EdgeCount() != 1 || g.OutDegree(1) != 0 {
		t.Error("mutating a clone should not affect the original")
	}
	if c.EdgeCount() != 2 {
		t.Errorf("clone EdgeCount() = %d, want 2", c.EdgeCount())
	}
}

func TestValidate_Corrupted(t *testing.T) {
	g := New([]int{1, 2})
	g.vertices[0].Neighbours = append(g.vertices[0].Neighbours, 5)

	if err := g.Validate(); !errors.Is(err, ErrInvalidEdgeEndpoint) {
		t.Errorf("Validate() = %v, want ErrInvalidEdgeEndpoint", err)
	}
}

func TestIsPermutation(t *testing.T) {
	tests := []struct {
		order []int
		want  bool
	}{
		{nil, true},
		{[]int{0}, true},
		{[]int{2, 0, 1}, true},
		{[]int{0, 0, 1}, false},
		{[]int{0, 3, 1}, false},
		{[]int{-1, 0}, false},
	}
	for _, tt := range tests {
		if got := IsPermutation(tt.order); got != tt.want {
			t.Errorf("IsPermutation(%v) = %v, want %v", tt.order, got, tt.want)
		}
	}
}
