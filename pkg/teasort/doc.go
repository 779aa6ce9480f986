// Package teasort sorts a sequence by first building a randomized hint graph
// over its positions and then repairing whatever order the graph produced.
//
// # Overview
//
// A sort runs in three phases:
//
//  1. Sampling: [EdgeBudget] decides how many random position pairs to draw
//     (2·n·⌊log2 n⌋). Each pair becomes a directed edge pointing from the
//     larger value to the smaller one.
//  2. Linearization: a post-order depth-first traversal of the hint graph
//     (see [transform.Linearize]) emits every position once. Because edges
//     point towards smaller values, post-order tends to place small values
//     first.
//  3. Finishing: an insertion pass turns the nearly ordered sequence into a
//     fully ordered one, counting every comparison it makes.
//
// The reported cost is the number of sampled edges plus the number of
// finishing comparisons. Correctness never depends on the random draws; only
// the cost does.
//
// # Randomness
//
// Randomness is injected through a [Source]. Nothing in this package touches
// a global generator, so two sorts with sources seeded identically produce
// identical costs:
//
//	rng := teasort.NewSource(42)
//	cost, err := teasort.Sort(rng, values)
//
// A Source is not safe for concurrent use. Give each goroutine its own, or
// wrap a shared one with [NewLockedSource].
//
// # Observability
//
// Every call to [Sort] or [SortWithStats] with at least two values reports to
// the hooks registered via [observability.SetSortHooks].
//
// [transform.Linearize]: github.com/matzehuels/teasort/pkg/dag/transform.Linearize
// [observability.SetSortHooks]: github.com/matzehuels/teasort/pkg/observability.SetSortHooks
package teasort
