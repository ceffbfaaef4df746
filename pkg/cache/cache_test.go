package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type view struct {
	Years []int            `json:"years"`
	Avg   map[int]*float64 `json:"avg"`
}

func TestMemoryCacheTypedRoundTrip(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	v := 1.5
	in := view{Years: []int{2021, 2022}, Avg: map[int]*float64{2021: &v, 2022: nil}}
	if err := mc.Set(ctx, "view:abc:heatmap", in, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	var out view
	if err := mc.Get(ctx, "view:abc:heatmap", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out.Years) != 2 || *out.Avg[2021] != 1.5 || out.Avg[2022] != nil {
		t.Fatalf("unexpected %+v", out)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	var s string
	if err := mc.Get(context.Background(), "nope", &s); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
}

func TestMemoryCacheDeleteByPattern(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()
	_ = mc.Set(ctx, "view:old:series", "a", 0)
	_ = mc.Set(ctx, "view:old:latest", "b", 0)
	_ = mc.Set(ctx, "view:new:series", "c", 0)

	if err := mc.DeleteByPattern(ctx, BuildPattern(GenerateKey("view", "old"))); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := mc.Exists(ctx, "view:old:series", "view:old:latest"); ok {
		t.Fatalf("old keys should be gone")
	}
	if ok, _ := mc.Exists(ctx, "view:new:series"); !ok {
		t.Fatalf("new key should survive")
	}
}

func TestMemoryCacheEvictsWhenFull(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()
	_ = mc.Set(ctx, "a", "1", 0)
	_ = mc.Set(ctx, "b", "2", 0)
	_ = mc.Set(ctx, "c", "3", 0)
	if len(mc.data) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(mc.data))
	}
}

func TestLayeredCacheWithoutL2(t *testing.T) {
	lc := NewLayeredCache(nil)
	defer lc.Close()
	ctx := context.Background()
	if err := lc.Set(ctx, "k", []int{1, 2}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got []int
	if err := lc.Get(ctx, "k", &got); err != nil || len(got) != 2 {
		t.Fatalf("get: %v %v", got, err)
	}
	if err := lc.Get(ctx, "missing", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
}

func TestLayeredCacheFallsBackToL2(t *testing.T) {
	l2 := NewMemoryCache()
	lc := NewLayeredCache(l2)
	defer lc.Close()
	ctx := context.Background()
	_ = l2.Set(ctx, "shared", "hello", 0)

	var s string
	if err := lc.Get(ctx, "shared", &s); err != nil || s != "hello" {
		t.Fatalf("expected L2 hit, got %q %v", s, err)
	}
	if ok, _ := lc.memCache.Exists(ctx, "shared"); !ok {
		t.Fatalf("L2 hit should be promoted to L1")
	}
}

func TestGenerateKeyWithParams(t *testing.T) {
	if got := GenerateKeyWithParams(GenerateKey("view", "h"), "series", 12); got != "view:h:series:12" {
		t.Fatalf("got %q", got)
	}
}

func TestLayeredCachePromotedStringKeepsValue(t *testing.T) {
	l2 := NewMemoryCache()
	lc := NewLayeredCache(l2)
	defer lc.Close()
	ctx := context.Background()
	_ = l2.Set(ctx, "s", "plain", 0)

	var first, second string
	_ = lc.Get(ctx, "s", &first)
	if err := lc.Get(ctx, "s", &second); err != nil || second != "plain" {
		t.Fatalf("promoted value changed: %q %v", second, err)
	}
}

func TestMemoryCacheCleanupDropsExpired(t *testing.T) {
	mc := NewMemoryCache(WithMemoryCleanup(5 * time.Millisecond))
	defer mc.Close()
	_ = mc.Set(context.Background(), "view:abc:series", "a", time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		mc.mutex.RLock()
		n := len(mc.data)
		mc.mutex.RUnlock()
		if n == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expired entry was not swept")
}

func TestLayeredCacheAppliesCleanupInterval(t *testing.T) {
	lc := NewLayeredCache(nil, WithLayeredMemoryCleanup(5*time.Millisecond))
	defer lc.Close()
	_ = lc.Set(context.Background(), "view:abc:latest", "a", time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		lc.memCache.mutex.RLock()
		n := len(lc.memCache.data)
		lc.memCache.mutex.RUnlock()
		if n == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("layered L1 did not use the configured cleanup interval")
}

func TestRedisPoolOptionKeepsDefaultsForZero(t *testing.T) {
	cfg := &RedisConfig{PoolSize: 10, MinIdleConns: 5, PoolTimeout: 30 * time.Second}
	WithRedisPool(20, 0, 4*time.Second)(cfg)
	if cfg.PoolSize != 20 || cfg.MinIdleConns != 5 || cfg.PoolTimeout != 4*time.Second {
		t.Fatalf("unexpected pool config %+v", cfg)
	}
}
