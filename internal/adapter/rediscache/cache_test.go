package rediscache

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"answer-orchestrator/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache, err := NewWithClient(client, 16, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestCache_LookupAndStore(t *testing.T) {
	ctx := context.Background()

	t.Run("should miss on unknown key", func(t *testing.T) {
		cache, _ := newTestCache(t)

		value, result := cache.Lookup(ctx, "never stored")

		assert.Equal(t, domain.LookupMiss, result)
		assert.Empty(t, value)
	})

	t.Run("should hit after store", func(t *testing.T) {
		cache, _ := newTestCache(t)

		cache.Store(ctx, "How do I prevent computer overheating?", "clean the fans")

		value, result := cache.Lookup(ctx, "How do I prevent computer overheating?")
		assert.Equal(t, domain.LookupHit, result)
		assert.Equal(t, "clean the fans", value)
	})

	t.Run("should treat keys as case and whitespace sensitive", func(t *testing.T) {
		cache, _ := newTestCache(t)

		cache.Store(ctx, "question one", "answer")

		_, result := cache.Lookup(ctx, "Question one")
		assert.Equal(t, domain.LookupMiss, result)
	})

	t.Run("should serve from memory tier when redis is down", func(t *testing.T) {
		cache, mr := newTestCache(t)

		cache.Store(ctx, "q", "a")
		mr.Close()

		value, result := cache.Lookup(ctx, "q")
		assert.Equal(t, domain.LookupHit, result)
		assert.Equal(t, "a", value)
	})

	t.Run("should report unavailable when redis is down and memory is cold", func(t *testing.T) {
		cache, mr := newTestCache(t)
		mr.Close()

		_, result := cache.Lookup(ctx, "cold key")

		assert.Equal(t, domain.LookupUnavailable, result)
	})

	t.Run("should not raise when store fails", func(t *testing.T) {
		cache, mr := newTestCache(t)
		mr.Close()

		assert.NotPanics(t, func() {
			cache.Store(ctx, "q", "a")
		})
		// Memory tier still memoizes.
		value, result := cache.Lookup(ctx, "q")
		assert.Equal(t, domain.LookupHit, result)
		assert.Equal(t, "a", value)
	})
}

func TestCache_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("should remove the key from both tiers", func(t *testing.T) {
		cache, _ := newTestCache(t)

		cache.Store(ctx, "q", "a")
		cache.Delete(ctx, "q")

		_, result := cache.Lookup(ctx, "q")
		assert.Equal(t, domain.LookupMiss, result)
		assert.False(t, cache.Exists(ctx, "q"))
	})

	t.Run("should not raise when redis is down", func(t *testing.T) {
		cache, mr := newTestCache(t)
		cache.Store(ctx, "q", "a")
		mr.Close()

		assert.NotPanics(t, func() {
			cache.Delete(ctx, "q")
		})
	})
}

func TestCache_ExistsAndSize(t *testing.T) {
	ctx := context.Background()

	t.Run("should report existence and db size", func(t *testing.T) {
		cache, _ := newTestCache(t)

		assert.False(t, cache.Exists(ctx, "q1"))

		cache.Store(ctx, "q1", "a1")
		cache.Store(ctx, "q2", "a2")

		assert.True(t, cache.Exists(ctx, "q1"))

		size, err := cache.Size(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), size)
	})

	t.Run("should wrap size errors with ErrCacheUnavailable", func(t *testing.T) {
		cache, mr := newTestCache(t)
		mr.Close()

		_, err := cache.Size(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
	})
}

func TestCache_Ping(t *testing.T) {
	t.Run("should report reachability", func(t *testing.T) {
		cache, mr := newTestCache(t)

		assert.True(t, cache.Ping(context.Background()))
		mr.Close()
		assert.False(t, cache.Ping(context.Background()))
	})
}
