package teasort

import (
	"cmp"
	"slices"
	"time"

	"github.com/matzehuels/teasort/pkg/dag"
	"github.com/matzehuels/teasort/pkg/dag/transform"
	"github.com/matzehuels/teasort/pkg/errors"
	"github.com/matzehuels/teasort/pkg/observability"
)

// Stats breaks down the work done by one sort.
type Stats struct {
	// N is the number of values sorted.
	N int `json:"n"`

	// Edges is the number of hint edges sampled, always EdgeBudget(N).
	Edges uint64 `json:"edges"`

	// Comparisons is the number of comparisons made by the finishing pass.
	Comparisons uint64 `json:"comparisons"`

	// SelfLoops counts sampled edges whose endpoints coincide.
	SelfLoops int `json:"self_loops"`

	// BackEdges counts edges that closed a cycle during linearization.
	BackEdges int `json:"back_edges"`

	// Roots is the number of depth-first trees the linearizer started.
	Roots int `json:"roots"`

	// Cost is Edges + Comparisons, the value returned by [Sort].
	Cost uint64 `json:"cost"`
}

// Sort orders values ascending in place and returns the cost of doing so:
// the number of sampled hint edges plus the number of finishing comparisons.
//
// Sequences of length 0 or 1 are left untouched and cost 0. For longer
// sequences rng must not be nil. Values are compared with the < and >
// operators, so floating-point NaN is rejected with ErrCodeInvalidInput.
//
// On success values is a non-decreasing permutation of its input. An error
// with ErrCodeInternal means an internal invariant broke; values is then left
// unchanged.
func Sort[T cmp.Ordered](rng Source, values []T) (uint64, error) {
	st, err := SortWithStats(rng, values)
	return st.Cost, err
}

// Ints sorts a slice of ints. It is shorthand for Sort[int].
func Ints(rng Source, values []int) (uint64, error) {
	return Sort(rng, values)
}

// SortWithStats is like [Sort] but reports the full cost breakdown.
func SortWithStats[T cmp.Ordered](rng Source, values []T) (Stats, error) {
	n := len(values)
	if n <= 1 {
		return Stats{N: n}, nil
	}
	if err := checkInput(rng, values); err != nil {
		return Stats{N: n}, err
	}

	hooks := observability.Sort()
	hooks.OnSortStart(n)
	start := time.Now()

	st, err := sortValues(rng, values)
	hooks.OnSortComplete(n, st.Edges, st.Comparisons, time.Since(start), err)
	return st, err
}

// Build returns the hint graph that a sort of values would linearize. values
// is not modified. Equal sources produce equal graphs.
func Build[T cmp.Ordered](rng Source, values []T) (*dag.Graph[T], error) {
	if len(values) > 1 {
		if err := checkInput(rng, values); err != nil {
			return nil, err
		}
	}
	g := dag.New(values)
	if err := SampleEdges(g, rng, EdgeBudget(len(values))); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "sample hint edges")
	}
	return g, nil
}

func checkInput[T cmp.Ordered](rng Source, values []T) error {
	if rng == nil {
		return errors.New(errors.ErrCodeInvalidInput, "random source is nil")
	}
	if err := errors.ValidateLength(len(values)); err != nil {
		return err
	}
	for i, v := range values {
		if v != v { // NaN
			return errors.New(errors.ErrCodeInvalidInput, "value at position %d is not comparable (NaN)", i)
		}
	}
	return nil
}

func sortValues[T cmp.Ordered](rng Source, values []T) (Stats, error) {
	n := len(values)
	st := Stats{N: n, Edges: EdgeBudget(n)}

	g, err := Build(rng, values)
	if err != nil {
		return st, err
	}
	st.SelfLoops = g.SelfLoops()

	tr := transform.Traverse(g)
	if err := tr.Check(n); err != nil {
		return st, errors.Wrap(errors.ErrCodeInternal, err, "linearize %d vertices", n)
	}
	st.BackEdges = tr.BackEdges
	st.Roots = tr.Roots

	seq := make([]T, n+1)
	for i, id := range tr.Order {
		seq[i+1] = g.Value(id)
	}
	st.Comparisons = finish(seq)
	st.Cost = st.Edges + st.Comparisons

	if !slices.IsSorted(seq[1:]) {
		return st, errors.Wrap(errors.ErrCodeInternal, ErrUnsorted, "finish %d values", n)
	}
	copy(values, seq[1:])
	return st, nil
}
