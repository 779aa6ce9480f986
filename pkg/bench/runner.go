package bench

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/teasort/pkg/cache"
	"github.com/matzehuels/teasort/pkg/errors"
	"github.com/matzehuels/teasort/pkg/observability"
	"github.com/matzehuels/teasort/pkg/teasort"
)

// Saver persists finished reports. store.Store implementations satisfy it.
type Saver interface {
	Save(ctx context.Context, r *Report) error
}

// Runner executes benchmark runs with caching and optional persistence.
//
// The Runner holds no per-run state. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  Saver
	Logger *log.Logger
}

// NewRunner creates a runner.
// If c is nil, a NullCache is used (caching disabled).
// If store is nil, reports are not persisted.
func NewRunner(c cache.Cache, store Saver, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  cache.NewDefaultKeyer(),
		Store:  store,
		Logger: logger,
	}
}

// Run measures every size of opts in increasing order. fn, if not nil, is
// called with each row as soon as it is available.
//
// The run stops at the first error. Cancelling ctx is checked between sorts
// and returns ctx.Err(). A partial report is never saved.
func (r *Runner) Run(ctx context.Context, opts Options, fn func(Row)) (*Report, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	report := newReport(opts, seed)
	sizes := opts.Sizes()

	hooks := observability.Bench()
	hooks.OnRunStart(ctx, report.ID, len(sizes))
	start := time.Now()

	err := r.run(ctx, report, sizes, fn)
	report.Duration = time.Since(start)
	hooks.OnRunComplete(ctx, report.ID, len(report.Rows), report.Duration, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("benchmark complete",
		"id", report.ID,
		"rows", len(report.Rows),
		"growth", report.Growth(),
		"duration", report.Duration)

	if r.Store != nil {
		if err := r.Store.Save(ctx, report); err != nil {
			return report, err
		}
		r.Logger.Debug("saved report", "id", report.ID)
	}
	return report, nil
}

func (r *Runner) run(ctx context.Context, report *Report, sizes []int, fn func(Row)) error {
	for _, n := range sizes {
		row, err := r.Row(ctx, n, report.Options.Iterations, report.Seed, report.Deterministic)
		if err != nil {
			return err
		}
		report.Rows = append(report.Rows, row)
		observability.Bench().OnRowComplete(ctx, report.ID, row.N, row.AvgCost, row.Duration)

		r.Logger.Debug("measured row",
			"n", row.N,
			"per_element", row.PerElement,
			"cached", row.Cached,
			"duration", row.Duration)
		if fn != nil {
			fn(row)
		}
	}
	return nil
}

// Row measures a single size, consulting the cache when cacheable is true.
// Cache failures are logged and otherwise ignored.
func (r *Runner) Row(ctx context.Context, n, iterations int, seed uint64, cacheable bool) (Row, error) {
	var key string
	if cacheable {
		key = r.Keyer.RowKey(n, iterations, seed)
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "key", key, "error", err)
		}
		if hit {
			var row Row
			if err := json.Unmarshal(data, &row); err == nil {
				row.Cached = true
				return row, nil
			}
			r.Logger.Warn("discarding corrupt cache entry", "key", key)
		}
	}

	row, err := Measure(ctx, RowSource(seed, n), n, iterations)
	if err != nil {
		return Row{}, err
	}

	if cacheable {
		if data, err := json.Marshal(row); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLRow); err != nil {
				r.Logger.Warn("cache write failed", "key", key, "error", err)
			}
		}
	}
	return row, nil
}

// RowSource derives the random source for the row of size n from a run
// seed. Rows of the same run get unrelated streams.
func RowSource(seed uint64, n int) teasort.Source {
	return teasort.NewSource(seed ^ uint64(n)*0x9e3779b97f4a7c15)
}

// Measure sorts iterations shuffled permutations of 1..n drawn from rng and
// returns the averaged cost. Every result is checked to be exactly 1..n; a
// mismatch is an internal error.
func Measure(ctx context.Context, rng teasort.Source, n, iterations int) (Row, error) {
	if err := errors.ValidateSizeRange(n, n); err != nil {
		return Row{}, err
	}
	if err := errors.ValidatePositive("iterations", iterations); err != nil {
		return Row{}, err
	}

	start := time.Now()
	p := make([]int, n)
	var total uint64

	for range iterations {
		if err := ctx.Err(); err != nil {
			return Row{}, err
		}
		for k := range p {
			p[k] = k + 1
		}
		Shuffle(rng, p)

		cost, err := teasort.Ints(rng, p)
		if err != nil {
			return Row{}, err
		}
		for k, v := range p {
			if v != k+1 {
				return Row{}, errors.New(errors.ErrCodeInternal, "n=%d: position %d holds %d after sort", n, k, v)
			}
		}
		total += cost
	}

	avg := float64(total) / float64(iterations)
	return Row{
		N:          n,
		Iterations: iterations,
		TotalCost:  total,
		AvgCost:    avg,
		PerElement: avg / float64(n),
		PerNLogN:   avg / (float64(n) * float64(teasort.Log2(n))),
		Duration:   time.Since(start),
	}, nil
}

// Shuffle permutes s uniformly at random (Fisher–Yates).
func Shuffle[T any](rng teasort.Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
