package teasort

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/teasort/pkg/errors"
	"github.com/matzehuels/teasort/pkg/observability"
)

// constSource always returns the same draw, clamped to [0, n).
type constSource int

func (c constSource) IntN(n int) int { return min(int(c), n-1) }

func TestSort_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		input   []int
		want    []int
		minCost uint64
	}{
		{"example", []int{5, 3, 4, 1, 2}, []int{1, 2, 3, 4, 5}, 20},
		{"already sorted", []int{1, 2, 3, 4}, []int{1, 2, 3, 4}, 16 + 3},
		{"reversed", []int{4, 3, 2, 1}, []int{1, 2, 3, 4}, 16 + 3},
		{"two", []int{2, 1}, []int{1, 2}, 4 + 1},
		{"duplicates", []int{3, 1, 3, 1, 2, 2}, []int{1, 1, 2, 2, 3, 3}, 24 + 5},
		{"all equal", []int{7, 7, 7, 7, 7}, []int{7, 7, 7, 7, 7}, 20 + 4},
		{"negative", []int{0, -5, 9, -1}, []int{-5, -1, 0, 9}, 16 + 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Clone(tt.input)
			cost, err := Ints(NewSource(1), got)
			if err != nil {
				t.Fatalf("Ints: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if cost < tt.minCost {
				t.Errorf("cost = %d, want >= %d", cost, tt.minCost)
			}
		})
	}
}

func TestSort_Trivial(t *testing.T) {
	for _, in := range [][]int{nil, {}, {42}} {
		got := slices.Clone(in)
		cost, err := Ints(NewSource(1), got)
		if err != nil {
			t.Fatalf("Ints(%v): %v", in, err)
		}
		if cost != 0 {
			t.Errorf("Ints(%v) cost = %d, want 0", in, cost)
		}
		if !slices.Equal(got, in) {
			t.Errorf("Ints(%v) modified input to %v", in, got)
		}
	}
}

func TestSort_TrivialAcceptsNilSource(t *testing.T) {
	cost, err := Ints(nil, []int{1})
	if err != nil || cost != 0 {
		t.Errorf("Ints(nil, [1]) = %d, %v; want 0, nil", cost, err)
	}
}

func TestSort_NilSource(t *testing.T) {
	values := []int{2, 1}
	_, err := Ints(nil, values)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if !slices.Equal(values, []int{2, 1}) {
		t.Errorf("values modified on error: %v", values)
	}
}

func TestSort_NaN(t *testing.T) {
	values := []float64{1, math.NaN(), 0}
	_, err := Sort(NewSource(1), values)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestSort_OtherTypes(t *testing.T) {
	words := []string{"pear", "apple", "fig", "banana", "cherry"}
	if _, err := Sort(NewSource(3), words); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(words, " "); got != "apple banana cherry fig pear" {
		t.Errorf("strings: got %q", got)
	}

	floats := []float64{2.5, -1, 0, math.Inf(1), math.Inf(-1), 2.5}
	if _, err := Sort(NewSource(3), floats); err != nil {
		t.Fatal(err)
	}
	if !slices.IsSorted(floats) {
		t.Errorf("floats not sorted: %v", floats)
	}
}

func TestSort_RandomInputs(t *testing.T) {
	gen := rand.New(rand.NewPCG(11, 12))
	rng := NewSource(13)

	for n := 0; n <= 300; n += 7 {
		values := make([]int, n)
		for i := range values {
			values[i] = gen.IntN(n/2+1) - n/4
		}
		want := slices.Sorted(slices.Values(values))

		cost, err := Ints(rng, values)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if !slices.Equal(values, want) {
			t.Fatalf("n=%d: result is not the sorted input", n)
		}
		if n >= 2 && cost < EdgeBudget(n)+uint64(n-1) {
			t.Errorf("n=%d: cost %d below %d", n, cost, EdgeBudget(n)+uint64(n-1))
		}
	}
}

func TestSort_Deterministic(t *testing.T) {
	input := make([]int, 500)
	for i := range input {
		input[i] = (i * 7919) % 500
	}

	a, b := slices.Clone(input), slices.Clone(input)
	costA, errA := Ints(NewSource(99), a)
	costB, errB := Ints(NewSource(99), b)
	if errA != nil || errB != nil {
		t.Fatalf("errors: %v, %v", errA, errB)
	}
	if costA != costB {
		t.Errorf("same seed gave costs %d and %d", costA, costB)
	}
}

func TestSort_Idempotent(t *testing.T) {
	values := []int{9, 2, 7, 2, 5, 0, 3, 8}
	if _, err := Ints(NewSource(5), values); err != nil {
		t.Fatal(err)
	}
	once := slices.Clone(values)
	cost, err := Ints(NewSource(6), values)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(values, once) {
		t.Errorf("second sort changed %v to %v", once, values)
	}
	if cost < EdgeBudget(len(values)) {
		t.Errorf("cost = %d, want >= %d", cost, EdgeBudget(len(values)))
	}
}

func TestSortWithStats_ConstantSource(t *testing.T) {
	// Every draw is (0, 0): the graph holds only self-loops on vertex 0, so
	// the linearization is the identity and the finishing pass sees the
	// input order unchanged.
	tests := []struct {
		name  string
		input []int
		comps uint64
	}{
		{"sorted", []int{1, 2, 3, 4}, 3},
		{"reversed", []int{4, 3, 2, 1}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := SortWithStats(constSource(0), slices.Clone(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			want := Stats{
				N:           4,
				Edges:       16,
				Comparisons: tt.comps,
				SelfLoops:   16,
				BackEdges:   16,
				Roots:       4,
				Cost:        16 + tt.comps,
			}
			if st != want {
				t.Errorf("stats = %+v, want %+v", st, want)
			}
		})
	}
}

func TestSortWithStats_CostIsSum(t *testing.T) {
	values := []int{8, 6, 7, 5, 3, 0, 9}
	st, err := SortWithStats(NewSource(4), values)
	if err != nil {
		t.Fatal(err)
	}
	if st.Cost != st.Edges+st.Comparisons {
		t.Errorf("cost %d != edges %d + comparisons %d", st.Cost, st.Edges, st.Comparisons)
	}
	if st.Edges != EdgeBudget(7) {
		t.Errorf("edges = %d, want %d", st.Edges, EdgeBudget(7))
	}
	if st.Roots < 1 {
		t.Errorf("roots = %d, want >= 1", st.Roots)
	}
}

func TestSort_Hooks(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetSortHooks(rec)
	t.Cleanup(observability.Reset)

	if _, err := Ints(NewSource(1), []int{3, 1, 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := Ints(NewSource(1), []int{1}); err != nil {
		t.Fatal(err)
	}

	if rec.starts != 1 || rec.completes != 1 {
		t.Fatalf("starts=%d completes=%d, want 1 and 1", rec.starts, rec.completes)
	}
	if rec.n != 3 || rec.edges != EdgeBudget(3) {
		t.Errorf("hook saw n=%d edges=%d", rec.n, rec.edges)
	}
	if rec.err != nil {
		t.Errorf("hook saw error %v", rec.err)
	}
}

func TestSort_GrowthIsNLogN(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping growth check in short mode")
	}

	rng := NewSource(2024)
	perNLogN := func(n int) float64 {
		const iterations = 4
		var total uint64
		p := make([]int, n)
		for range iterations {
			for i := range p {
				p[i] = i + 1
			}
			rand.New(rand.NewPCG(uint64(n), 1)).Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
			cost, err := Ints(rng, p)
			if err != nil {
				t.Fatalf("n=%d: %v", n, err)
			}
			total += cost
		}
		return float64(total) / iterations / (float64(n) * float64(Log2(n)))
	}

	small, large := perNLogN(256), perNLogN(4096)
	if small < 2 || large < 2 {
		t.Fatalf("cost per n·log2 n below the edge budget: %.2f, %.2f", small, large)
	}
	if ratio := large / small; ratio > 1.5 {
		t.Errorf("cost per n·log2 n grew by %.2fx from n=256 to n=4096", ratio)
	}
}

type recordingHooks struct {
	observability.NoopSortHooks
	starts, completes int
	n                 int
	edges             uint64
	err               error
}

func (r *recordingHooks) OnSortStart(int) { r.starts++ }

func (r *recordingHooks) OnSortComplete(n int, edges, _ uint64, _ time.Duration, err error) {
	r.completes++
	r.n, r.edges, r.err = n, edges, err
}

func BenchmarkSort(b *testing.B) {
	for _, n := range []int{1 << 8, 1 << 12, 1 << 16} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			rng := NewSource(1)
			src := make([]int, n)
			for i := range src {
				src[i] = rng.IntN(n)
			}
			values := make([]int, n)
			b.ReportAllocs()
			for b.Loop() {
				copy(values, src)
				if _, err := Ints(rng, values); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
