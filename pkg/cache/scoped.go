package cache

// ScopedKeyer wraps a Keyer with a prefix so that several independent
// callers can share one backend without colliding, e.g. one scope per CI
// runner:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "runner:linux-amd64:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RowKey generates a prefixed key for a benchmark row.
func (k *ScopedKeyer) RowKey(n, iterations int, seed uint64) string {
	return k.prefix + k.inner.RowKey(n, iterations, seed)
}

// BenchKey generates a prefixed key for a benchmark run.
func (k *ScopedKeyer) BenchKey(opts BenchKeyOpts) string {
	return k.prefix + k.inner.BenchKey(opts)
}
