package cache

import (
	"context"
	"time"
)

// LayeredCache implements two-level cache (L1: Memory, L2: optional shared store such as Redis).
type LayeredCache struct {
	memCache *MemoryCache
	l2       Service
}

// NewLayeredCache creates a layered cache. A nil l2 leaves a memory-only cache.
func NewLayeredCache(l2 Service, opts ...LayeredOption) *LayeredCache {
	cfg := &LayeredConfig{
		MemoryMaxSize: 1000,
		MemoryCleanup: 5 * time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &LayeredCache{
		memCache: NewMemoryCache(WithMemoryMaxSize(cfg.MemoryMaxSize), WithMemoryCleanup(cfg.MemoryCleanup)),
		l2:       l2,
	}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	// Write-through: L2 first, then memory
	if lc.l2 != nil {
		if err := lc.l2.Set(ctx, key, value, expiration); err != nil {
			return err
		}
	}
	return lc.memCache.Set(ctx, key, value, expiration)
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	// L1: Try memory first
	if err := lc.memCache.Get(ctx, key, dest); err == nil || lc.l2 == nil {
		return err
	}

	// L2
	if err := lc.l2.Get(ctx, key, dest); err != nil {
		return err
	}

	// Store in memory for next time
	_ = lc.memCache.Set(ctx, key, dest, 0)
	return nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.memCache.Delete(ctx, keys...)
	if lc.l2 == nil {
		return nil
	}
	return lc.l2.Delete(ctx, keys...)
}

func (lc *LayeredCache) DeleteByPattern(ctx context.Context, pattern string) error {
	if err := lc.memCache.DeleteByPattern(ctx, pattern); err != nil {
		return err
	}
	if lc.l2 == nil {
		return nil
	}
	return lc.l2.DeleteByPattern(ctx, pattern)
}

func (lc *LayeredCache) Exists(ctx context.Context, keys ...string) (bool, error) {
	if ok, _ := lc.memCache.Exists(ctx, keys...); ok || lc.l2 == nil {
		return ok, nil
	}
	return lc.l2.Exists(ctx, keys...)
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.memCache.Close()
	if lc.l2 == nil {
		return nil
	}
	return lc.l2.Close()
}
