package engine

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		k1 := CacheKey("analyze_playlist", "PL123")
		k2 := CacheKey("analyze_playlist", "PL123")
		if k1 != k2 {
			t.Errorf("CacheKey not deterministic: %q != %q", k1, k2)
		}
	})

	t.Run("different inputs differ", func(t *testing.T) {
		k1 := CacheKey("analyze_playlist", "PL123")
		k2 := CacheKey("analyze_playlist", "PL456")
		if k1 == k2 {
			t.Errorf("different inputs produced same key: %q", k1)
		}
	})

	t.Run("has prefix", func(t *testing.T) {
		k := CacheKey("test")
		if k[:3] != "gm:" {
			t.Errorf("expected gm: prefix, got %q", k[:3])
		}
	})
}

func TestCacheLoadStoreJSON(t *testing.T) {
	// Init minimal cache (no Redis)
	InitCache("", 1*time.Minute, 100, 5*time.Minute)

	ctx := context.Background()
	key := CacheKey("test", "round-trip")

	// Miss
	_, ok := CacheLoadJSON[PlaylistsOutput](ctx, key)
	if ok {
		t.Error("expected cache miss on empty cache")
	}

	val := PlaylistsOutput{Total: 1, Playlists: []Playlist{{ID: "PL1", Title: "Mix"}}}
	CacheStoreJSON(ctx, key, val)

	got, ok := CacheLoadJSON[PlaylistsOutput](ctx, key)
	if !ok {
		t.Fatal("expected cache hit after store")
	}
	if got.Total != 1 || len(got.Playlists) != 1 || got.Playlists[0].Title != "Mix" {
		t.Errorf("got %+v, want %+v", got, val)
	}
}

func TestCacheExpiration(t *testing.T) {
	InitCache("", 1*time.Millisecond, 100, 5*time.Minute)

	ctx := context.Background()
	key := CacheKey("test", "expiry")

	CacheSetRaw(ctx, key, []byte(`{"total":0}`))
	time.Sleep(5 * time.Millisecond)

	_, ok := CacheGetRaw(ctx, key)
	if ok {
		t.Error("expected cache miss after TTL expiry")
	}
}

func TestCacheEviction(t *testing.T) {
	// maxEntries=3
	InitCache("", 1*time.Minute, 3, 5*time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		key := CacheKey("evict", fmt.Sprintf("item-%d", i))
		CacheSetRaw(ctx, key, []byte(fmt.Sprintf(`"v%d"`, i)))
	}

	count := 0
	toolCache.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count > 3 {
		t.Errorf("expected at most 3 entries after eviction, got %d", count)
	}
}

func TestCacheStats(t *testing.T) {
	InitCache("", 1*time.Minute, 100, 5*time.Minute)
	// Reset counters
	cacheHits.Store(0)
	cacheMisses.Store(0)

	ctx := context.Background()
	key := CacheKey("stats", "test")

	// Miss
	CacheGetRaw(ctx, key)
	_, misses := CacheStats()
	if misses != 1 {
		t.Errorf("misses = %d, want 1", misses)
	}

	// Set and hit
	CacheSetRaw(ctx, key, []byte(`"x"`))
	CacheGetRaw(ctx, key)

	hits, misses := CacheStats()
	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
	if misses != 1 {
		t.Errorf("misses = %d, want 1", misses)
	}
}

func TestCacheLoadJSONBadPayload(t *testing.T) {
	InitCache("", 1*time.Minute, 100, 5*time.Minute)
	ctx := context.Background()
	key := CacheKey("bad", "payload")

	CacheSetRaw(ctx, key, []byte(`not json`))
	if _, ok := CacheLoadJSON[PlaylistsOutput](ctx, key); ok {
		t.Error("expected miss for undecodable payload")
	}
}
