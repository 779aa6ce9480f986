package cache

import "strings"

// KeyPrefix is prepended to every key built by [DefaultKeyer]. Backends that
// share storage with other applications (Redis) use it to scope Clear.
const KeyPrefix = "teasort:"

// Keyer builds cache keys.
type Keyer interface {
	// RowKey identifies one benchmark row: iterations sorts of size n
	// driven by a source seeded with seed.
	RowKey(n, iterations int, seed uint64) string

	// BenchKey identifies a complete benchmark run.
	BenchKey(opts BenchKeyOpts) string
}

// BenchKeyOpts are the inputs that determine a benchmark run's output.
type BenchKeyOpts struct {
	MinSize    int    `json:"min_size"`
	MaxSize    int    `json:"max_size"`
	Iterations int    `json:"iterations"`
	Seed       uint64 `json:"seed"`
}

// DefaultKeyer hashes key inputs under a versioned prefix.
type DefaultKeyer struct {
	version string
}

// keyVersion changes whenever the cost model changes, invalidating every
// cached result at once.
const keyVersion = "v1"

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{version: keyVersion}
}

// RowKey implements Keyer.
func (k *DefaultKeyer) RowKey(n, iterations int, seed uint64) string {
	return hashKey(KeyPrefix+"row:"+k.version, n, iterations, seed)
}

// BenchKey implements Keyer.
func (k *DefaultKeyer) BenchKey(opts BenchKeyOpts) string {
	return hashKey(KeyPrefix+"bench:"+k.version, opts)
}

// KeyType extracts the entry type from a key built by a Keyer ("row",
// "bench"). Unknown keys yield "other".
func KeyType(key string) string {
	if i := strings.Index(key, KeyPrefix); i >= 0 {
		rest := key[i+len(KeyPrefix):]
		if j := strings.IndexByte(rest, ':'); j > 0 {
			return rest[:j]
		}
	}
	return "other"
}
