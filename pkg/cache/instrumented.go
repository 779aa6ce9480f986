package cache

import (
	"context"
	"time"

	"github.com/matzehuels/teasort/pkg/observability"
)

// Instrumented reports every Get and Set of the wrapped cache to the
// registered observability cache hooks, labelled with [KeyType].
type Instrumented struct {
	Cache
}

// NewInstrumented wraps c.
func NewInstrumented(c Cache) *Instrumented {
	return &Instrumented{Cache: c}
}

// Get implements Cache.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, KeyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, hit, err
}

// Set implements Cache.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	return nil
}

// Clear implements Clearer when the wrapped cache does.
func (c *Instrumented) Clear(ctx context.Context) error {
	_, err := Clear(ctx, c.Cache)
	return err
}
