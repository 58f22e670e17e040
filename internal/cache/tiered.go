package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Tiered is the two-tier cache: an in-process TTL map in front of an
// optional Redis tier. Reads check memory first and promote Redis hits;
// writes and invalidations go to both tiers.
type Tiered struct {
	memory *Memory
	redis  *Redis
	group  singleflight.Group
}

// NewTiered creates a tiered cache. redis may be nil, leaving only the
// memory tier active.
func NewTiered(memory *Memory, redis *Redis) *Tiered {
	return &Tiered{memory: memory, redis: redis}
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	if value, ok := t.memory.Get(key); ok {
		return value, true
	}
	if t.redis == nil {
		return nil, false
	}
	value, ok := t.redis.Get(ctx, key)
	if ok {
		// Promote with a short TTL; Redis keeps the authoritative expiry.
		t.memory.Set(key, value, 30*time.Second)
	}
	return value, ok
}

func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	t.memory.Set(key, value, ttl)
	if t.redis != nil {
		t.redis.Set(ctx, key, value, ttl)
	}
}

func (t *Tiered) Delete(ctx context.Context, key string) {
	t.memory.Delete(key)
	if t.redis != nil {
		t.redis.Delete(ctx, key)
	}
}

// GetOrLoad returns the cached value for key, loading and caching it on
// a miss. Concurrent misses for the same key collapse into a single
// loader call.
func (t *Tiered) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if value, ok := t.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := t.group.Do(key, func() (interface{}, error) {
		if value, ok := t.Get(ctx, key); ok {
			return value, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		t.Set(ctx, key, loaded, ttl)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}
