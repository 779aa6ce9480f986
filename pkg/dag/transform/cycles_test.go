package transform

import "testing"

func TestCountBackEdges_NoCycles(t *testing.T) {
	g := build(t, 3, [2]int{0, 1}, [2]int{1, 2})

	if got := CountBackEdges(g); got != 0 {
		t.Errorf("CountBackEdges() = %d, want 0", got)
	}
	if HasCycle(g) {
		t.Error("HasCycle() = true for a chain")
	}
}

func TestCountBackEdges_SimpleCycle(t *testing.T) {
	g := build(t, 2, [2]int{0, 1}, [2]int{1, 0})

	if got := CountBackEdges(g); got != 1 {
		t.Errorf("CountBackEdges() = %d, want 1", got)
	}
	if !HasCycle(g) {
		t.Error("HasCycle() = false for a 2-cycle")
	}
}

func TestCountBackEdges_TriangleCycle(t *testing.T) {
	g := build(t, 3, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0})

	if got := CountBackEdges(g); got != 1 {
		t.Errorf("CountBackEdges() = %d, want 1", got)
	}
}

func TestCountBackEdges_MultipleCycles(t *testing.T) {
	// Two separate cycles: 0↔1 and 2↔3
	g := build(t, 4, [2]int{0, 1}, [2]int{1, 0}, [2]int{2, 3}, [2]int{3, 2})

	if got := CountBackEdges(g); got != 2 {
		t.Errorf("CountBackEdges() = %d, want 2", got)
	}
}

func TestCountBackEdges_SelfLoop(t *testing.T) {
	g := build(t, 1, [2]int{0, 0})

	if got := CountBackEdges(g); got != 1 {
		t.Errorf("CountBackEdges() = %d, want 1", got)
	}
}

func TestCountBackEdges_DiamondNoCycle(t *testing.T) {
	//   0
	//  / \
	// 1   2
	//  \ /
	//   3
	g := build(t, 4, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 3}, [2]int{2, 3})

	if got := CountBackEdges(g); got != 0 {
		t.Errorf("CountBackEdges() = %d, want 0", got)
	}
}

func TestCountBackEdges_EmptyGraph(t *testing.T) {
	if got := CountBackEdges(build(t, 0)); got != 0 {
		t.Errorf("CountBackEdges() = %d, want 0", got)
	}
}
