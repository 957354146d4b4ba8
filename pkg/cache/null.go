package cache

import (
	"context"
	"time"
)

// NullCache stands in for a real backend when caching is off, so every SVG
// render runs Graphviz. It remembers why caching is off for diagnostics.
type NullCache struct {
	reason string
}

// NewNullCache returns a cache that stores nothing. reason is reported by
// [NullCache.Reason], e.g. "--no-cache" or "backend none".
func NewNullCache(reason string) *NullCache {
	return &NullCache{reason: reason}
}

// Reason reports why caching is disabled.
func (c *NullCache) Reason() string { return c.reason }

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (c *NullCache) Delete(context.Context, string) error                    { return nil }
func (c *NullCache) Close() error                                            { return nil }

var _ Cache = (*NullCache)(nil)
