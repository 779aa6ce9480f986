// Package bench measures how the cost of teasort grows with input size.
//
// A run sorts shuffled permutations of 1..n for doubling sizes n and
// reports, per size, the average cost divided by n. If the cost is
// O(n log n) the per-element figure grows by a roughly constant step each
// time n doubles.
//
// # Usage
//
//	runner := bench.NewRunner(c, store, logger)
//	report, err := runner.Run(ctx, bench.Options{Seed: 1}, func(row bench.Row) {
//	    fmt.Println(row)
//	})
//
// Each row is printed the same way the classic harness did:
//
//	      32	   14.25N
//
// # Reproducibility
//
// A non-zero Seed makes a run deterministic: every row draws from a source
// derived from the seed and the row's size, so a row's result depends only
// on (n, iterations, seed). Deterministic rows are cached under
// [cache.Keyer.RowKey]. A zero Seed picks a time-based seed, recorded in the
// report, and bypasses the cache.
package bench
