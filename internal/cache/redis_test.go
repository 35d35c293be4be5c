package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside(t *testing.T) {
	t.Run("fetches on miss and serves from cache after", func(t *testing.T) {
		setupCache(t)
		ctx := context.Background()

		calls := 0
		var got cachedThing
		fetch := func() error {
			calls++
			got = cachedThing{ID: 7, Name: "laptops"}
			return nil
		}

		require.NoError(t, Aside(ctx, "thing:7", &got, time.Minute, fetch))
		assert.Equal(t, cachedThing{ID: 7, Name: "laptops"}, got)
		assert.Equal(t, 1, calls)

		var again cachedThing
		require.NoError(t, Aside(ctx, "thing:7", &again, time.Minute, fetch))
		assert.Equal(t, got, again)
		assert.Equal(t, 1, calls, "second read should be a cache hit")
	})

	t.Run("works without a redis client", func(t *testing.T) {
		SetClient(nil)

		var got cachedThing
		err := Aside(context.Background(), "thing:1", &got, time.Minute, func() error {
			got = cachedThing{ID: 1, Name: "chairs"}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "chairs", got.Name)
	})

	t.Run("drops a corrupt cache entry and refetches", func(t *testing.T) {
		mr := setupCache(t)
		require.NoError(t, mr.Set("thing:9", "{not json"))

		var got cachedThing
		err := Aside(context.Background(), "thing:9", &got, time.Minute, func() error {
			got = cachedThing{ID: 9, Name: "desks"}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "desks", got.Name)
	})
}

func TestInvalidateRequest(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	for _, key := range []string{RequestKey(3), RequestHistoryKey(3), TrackKey("003"), RequestStatsKey} {
		require.NoError(t, mr.Set(key, "x"))
	}

	InvalidateRequest(ctx, 3, "003")

	for _, key := range []string{RequestKey(3), RequestHistoryKey(3), TrackKey("003"), RequestStatsKey} {
		assert.False(t, mr.Exists(key), "key %s should be gone", key)
	}
}
