package l1

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) *BigCache {
	t.Helper()
	cache, err := NewBigCache(10, 0, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestNewBigCache(t *testing.T) {
	logger := zap.NewNop()

	cache, err := NewBigCache(10, 0, logger)
	require.NoError(t, err)
	defer cache.Close()

	assert.NotNil(t, cache.cache)
	assert.Equal(t, logger, cache.logger)
	assert.True(t, cache.metricsScheduler.IsRunning())
	assert.Equal(t, "l1", cache.metricsLevel)
}

func TestNewBigCache_WithMetricsLevel(t *testing.T) {
	cache, err := NewBigCache(10, 0, zap.NewNop(), WithMetricsLevel("kv_fallback"))
	require.NoError(t, err)
	defer cache.Close()

	assert.Equal(t, "kv_fallback", cache.metricsLevel)
}

func TestBigCache_Set_And_Get(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "player:zezima:data", []byte("profile")))

	val, found, err := cache.Get(ctx, "player:zezima:data")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("profile"), val)
}

func TestBigCache_Get_NotFound(t *testing.T) {
	cache := newTestCache(t)

	val, found, err := cache.Get(context.Background(), "non-existent-key")

	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, val)
}

func TestBigCache_Set_Overwrites(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", []byte("first")))
	require.NoError(t, cache.Set(ctx, "key", []byte("second")))

	val, found, err := cache.Get(ctx, "key")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("second"), val)
}

func TestBigCache_Delete(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", []byte("value")))
	require.NoError(t, cache.Delete(ctx, "key"))

	_, found, err := cache.Get(ctx, "key")
	assert.NoError(t, err)
	assert.False(t, found)

	// deleting a missing key is not an error
	assert.NoError(t, cache.Delete(ctx, "key"))
}

func TestBigCache_GetStats(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("key-%d", i), []byte("value")))
	}

	capacity, entries := cache.GetStats()
	assert.Greater(t, capacity, int64(0))
	assert.Equal(t, int64(5), entries)
}

func TestBigCache_ConcurrentAccess(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", id)
			_ = cache.Set(ctx, key, []byte(key))
			_, _, _ = cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("key-%d", i)
		val, found, err := cache.Get(ctx, key)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte(key), val)
	}
}
