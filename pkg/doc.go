// Package pkg provides the libraries behind teasort, a randomized
// graph-based comparison sort and its benchmark harness.
//
// # Overview
//
// Teasort sorts n values by sampling random comparisons between positions,
// recording each as a directed edge from the larger value to the smaller,
// and reading a linear order back from a post-order depth-first traversal.
// A cost-counting insertion pass finishes the job. The pkg directory is
// organized into three areas:
//
//  1. Algorithm: [teasort], [dag], [dag/transform]
//  2. Measurement: [bench], [cache], [store], [observability]
//  3. Output: [io], [render/nodelink], [errors], [buildinfo]
//
// # Architecture
//
// The data flow of a single sort:
//
//	values
//	   ↓
//	[dag] package (one vertex per position)
//	   ↓
//	[teasort.SampleEdges] (2·n·⌊log₂ n⌋ random comparisons)
//	   ↓
//	[transform.Linearize] (post-order DFS)
//	   ↓
//	insertion finish (counts element shifts)
//	   ↓
//	sorted values + cost
//
// # Quick Start
//
//	rng := teasort.NewSource(42)
//	values := []int{5, 3, 1, 4, 2}
//	cost, err := teasort.Sort(rng, values)
//
// Collect the full breakdown instead of the combined cost:
//
//	stats, err := teasort.SortWithStats(rng, values)
//	fmt.Println(stats.Edges, stats.Comparisons, stats.Cost)
//
// Run the doubling benchmark:
//
//	runner := bench.NewRunner(cache.NewNullCache(), nil, logger)
//	report, err := runner.Run(ctx, bench.Options{MinSize: 32, MaxSize: 4096}, nil)
//
// # Main Packages
//
// [teasort] - The sort itself: edge sampling, linearization and the
// insertion finish, plus reproducible random sources.
//
// [dag] - A generic digraph over positions. Duplicate edges and self-loops
// are allowed; the sort never needs to reject them.
//
// [dag/transform] - Traversals over [dag.Graph]: post-order linearization
// and back-edge counting.
//
// [bench] - Doubling experiments that report average cost per element and
// per n·log₂ n for each size.
//
// [cache] - File, Redis and null caches for deterministic benchmark rows,
// with instrumentation and scoped keys.
//
// [store] - File and MongoDB persistence for benchmark reports.
//
// [observability] - Hook interfaces for sorts, benchmarks, caches and HTTP
// requests, with a Prometheus implementation in [observability/prom].
//
// [io] - JSON import and export of sort graphs.
//
// [render/nodelink] - Graphviz DOT and SVG output of sort graphs.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/teasort/...  # Specific package
//	go test -run Example       # Examples only
//
// Redis and MongoDB tests are skipped unless TEASORT_REDIS_ADDR or
// TEASORT_MONGO_URI is set.
//
// [teasort]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/teasort
// [teasort.SampleEdges]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/teasort#SampleEdges
// [transform.Linearize]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/dag/transform#Linearize
// [dag]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/dag
// [dag.Graph]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/dag#Graph
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/dag/transform
// [bench]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/bench
// [cache]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/observability
// [observability/prom]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/observability/prom
// [io]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/teasort/pkg/buildinfo
package pkg
