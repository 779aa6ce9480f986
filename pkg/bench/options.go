package bench

import (
	"github.com/matzehuels/teasort/pkg/errors"
)

// Defaults for a benchmark run.
const (
	DefaultMinSize    = 32
	DefaultMaxSize    = 1 << 16
	DefaultIterations = 16
)

// Options configures a benchmark run.
type Options struct {
	// MinSize is the first size measured. Default: 32.
	MinSize int `json:"min_size" toml:"min_size"`

	// MaxSize bounds the doubling sequence (inclusive). Default: 65536.
	MaxSize int `json:"max_size" toml:"max_size"`

	// Rounds, when positive, measures exactly this many sizes starting at
	// MinSize and overrides MaxSize.
	Rounds int `json:"rounds,omitempty" toml:"rounds"`

	// Iterations is the number of sorts averaged per size. Default: 16.
	Iterations int `json:"iterations" toml:"iterations"`

	// Seed makes the run reproducible. Zero picks a time-based seed.
	Seed uint64 `json:"seed" toml:"seed"`
}

// ValidateAndSetDefaults fills zero fields with defaults and validates the
// result.
func (o *Options) ValidateAndSetDefaults() error {
	if o.MinSize == 0 {
		o.MinSize = DefaultMinSize
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Rounds < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "rounds cannot be negative: %d", o.Rounds)
	}
	if o.Rounds > 0 {
		size := o.MinSize
		for range o.Rounds - 1 {
			if size *= 2; size > errors.MaxInputLength {
				return errors.New(errors.ErrCodeInvalidSize, "%d rounds from %d exceed the maximum size %d", o.Rounds, o.MinSize, errors.MaxInputLength)
			}
		}
		o.MaxSize = size
	}
	if o.MaxSize == 0 {
		o.MaxSize = max(DefaultMaxSize, o.MinSize)
	}
	if err := errors.ValidateSizeRange(o.MinSize, o.MaxSize); err != nil {
		return err
	}
	return errors.ValidatePositive("iterations", o.Iterations)
}

// Sizes returns MinSize, 2·MinSize, 4·MinSize, ... up to and including
// MaxSize.
func (o Options) Sizes() []int {
	var sizes []int
	for n := o.MinSize; n > 0 && n <= o.MaxSize; n *= 2 {
		sizes = append(sizes, n)
	}
	return sizes
}
