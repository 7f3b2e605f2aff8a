package weather

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-picnic-planner/internal/types"
)

var _ Lookup = (*CachedLookup)(nil)

// CachedLookup wraps a Lookup with a TTL cache. Negative answers and errors
// are never cached so an unknown name can be retried.
type CachedLookup struct {
	inner Lookup
	cache *cache.Cache
}

// NewCachedLookup creates a cache decorator around a lookup.
func NewCachedLookup(inner Lookup, ttl time.Duration) *CachedLookup {
	return &CachedLookup{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedLookup) CityExists(ctx context.Context, name string) (bool, error) {
	key := "exists:" + strings.ToLower(name)
	if _, ok := c.cache.Get(key); ok {
		return true, nil
	}
	exists, err := c.inner.CityExists(ctx, name)
	if err != nil {
		return false, err
	}
	if exists {
		c.cache.SetDefault(key, true)
	}
	return exists, nil
}

func (c *CachedLookup) CurrentWeather(ctx context.Context, name string) (*types.Weather, error) {
	key := "weather:" + strings.ToLower(name)
	if v, ok := c.cache.Get(key); ok {
		w := v.(types.Weather)
		return &w, nil
	}
	w, err := c.inner.CurrentWeather(ctx, name)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, *w)
	// a known weather also proves existence
	c.cache.SetDefault("exists:"+strings.ToLower(name), true)
	return w, nil
}
