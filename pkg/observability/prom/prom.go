// Package prom implements the observability hooks on top of Prometheus.
//
// A [Metrics] value satisfies every hook interface of the observability
// package. Create one against a registry, install it, and expose the
// registry over HTTP:
//
//	reg := prometheus.NewRegistry()
//	m := prom.New(reg, "teasort")
//	m.Install()
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/teasort/pkg/observability"
)

// Metrics holds every collector fed by the hooks.
type Metrics struct {
	// Sort metrics
	SortsTotal      *prometheus.CounterVec
	SortDuration    prometheus.Histogram
	SortSize        prometheus.Histogram
	SortEdges       prometheus.Counter
	SortComparisons prometheus.Counter
	SortsInFlight   prometheus.Gauge

	// Bench metrics
	BenchRunsTotal   *prometheus.CounterVec
	BenchRowCost     *prometheus.GaugeVec
	BenchRowDuration prometheus.Histogram

	// Cache metrics
	CacheOpsTotal *prometheus.CounterVec
	CacheSetBytes *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
}

var (
	_ observability.SortHooks  = (*Metrics)(nil)
	_ observability.BenchHooks = (*Metrics)(nil)
	_ observability.CacheHooks = (*Metrics)(nil)
	_ observability.HTTPHooks  = (*Metrics)(nil)
)

// New creates the collectors under namespace and registers them with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		SortsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sorts_total",
				Help:      "Total number of sort calls",
			},
			[]string{"status"},
		),

		SortDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sort_duration_seconds",
				Help:      "Duration of sort calls",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
		),

		SortSize: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sort_values",
				Help:      "Number of values per sort call",
				Buckets:   prometheus.ExponentialBuckets(2, 4, 11),
			},
		),

		SortEdges: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sort_edges_total",
				Help:      "Total number of hint edges sampled",
			},
		),

		SortComparisons: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sort_comparisons_total",
				Help:      "Total number of finishing-pass comparisons",
			},
		),

		SortsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sorts_in_flight",
				Help:      "Current number of sorts being processed",
			},
		),

		BenchRunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "bench",
				Name:      "runs_total",
				Help:      "Total number of benchmark runs",
			},
			[]string{"status"},
		),

		BenchRowCost: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "bench",
				Name:      "cost_per_element",
				Help:      "Average cost per element of the last completed row",
			},
			[]string{"n"},
		),

		BenchRowDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "bench",
				Name:      "row_duration_seconds",
				Help:      "Duration of benchmark rows",
				Buckets:   []float64{.001, .01, .1, .5, 1, 2.5, 5, 10, 30, 60},
			},
		),

		CacheOpsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "operations_total",
				Help:      "Total number of cache operations",
			},
			[]string{"key_type", "result"},
		),

		CacheSetBytes: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "written_bytes_total",
				Help:      "Total bytes written to the cache",
			},
			[]string{"key_type"},
		),

		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),

		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),

		HTTPRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
	}
}

// Install registers m as the sort, bench, cache and HTTP hooks.
func (m *Metrics) Install() {
	observability.SetSortHooks(m)
	observability.SetBenchHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (m *Metrics) OnSortStart(int) {
	m.SortsInFlight.Inc()
}

func (m *Metrics) OnSortComplete(n int, edges, comparisons uint64, duration time.Duration, err error) {
	m.SortsInFlight.Dec()
	m.SortsTotal.WithLabelValues(status(err)).Inc()
	m.SortDuration.Observe(duration.Seconds())
	m.SortSize.Observe(float64(n))
	m.SortEdges.Add(float64(edges))
	m.SortComparisons.Add(float64(comparisons))
}

func (m *Metrics) OnRunStart(context.Context, string, int) {}

func (m *Metrics) OnRowComplete(_ context.Context, _ string, n int, avgCost float64, duration time.Duration) {
	if n > 0 {
		m.BenchRowCost.WithLabelValues(strconv.Itoa(n)).Set(avgCost / float64(n))
	}
	m.BenchRowDuration.Observe(duration.Seconds())
}

func (m *Metrics) OnRunComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	m.BenchRunsTotal.WithLabelValues(status(err)).Inc()
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheOpsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheOpsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheOpsTotal.WithLabelValues(keyType, "set").Inc()
	m.CacheSetBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.HTTPRequestsInFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	m.HTTPRequestsInFlight.Dec()
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
