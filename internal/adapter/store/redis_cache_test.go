package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCacheForTest(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, ttl), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	cache, _ := newRedisCacheForTest(t, time.Hour)
	ctx := context.Background()

	_, ok, err := cache.Lookup(ctx, "fp1")
	require.NoError(t, err)
	assert.False(t, ok)

	want := sampleResult()
	require.NoError(t, cache.Store(ctx, "fp1", want))

	got, ok, err := cache.Lookup(ctx, "fp1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestRedisCacheExpiry(t *testing.T) {
	cache, mr := newRedisCacheForTest(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, "fp1", sampleResult()))

	mr.FastForward(time.Hour + time.Second)

	_, ok, err := cache.Lookup(ctx, "fp1")
	require.NoError(t, err)
	assert.False(t, ok, "redis TTL must expire the entry")
}

func TestRedisCacheCorruptEntry(t *testing.T) {
	cache, mr := newRedisCacheForTest(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, mr.Set(redisKeyPrefix+"fp1", "{not json"))

	_, ok, err := cache.Lookup(ctx, "fp1")
	assert.False(t, ok)
	assert.Error(t, err)
	assert.False(t, mr.Exists(redisKeyPrefix+"fp1"), "corrupt entry must be dropped")
}
