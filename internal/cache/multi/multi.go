package multi

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"go-player-tracker/internal/interfaces"
	"go-player-tracker/internal/metrics"
	"go-player-tracker/internal/models"
)

// Ensure MultiCache implements interfaces.LevelAwareCache
var _ interfaces.LevelAwareCache = (*MultiCache)(nil)

// MultiCache chains cache levels from fastest to most durable.
// The first level reports as L1, every later level as L2.
type MultiCache struct {
	caches []interfaces.Cache
	logger *zap.Logger
}

// NewMultiCache creates a new MultiCache instance with provided cache implementations
func NewMultiCache(caches []interfaces.Cache, logger *zap.Logger) *MultiCache {
	return &MultiCache{
		caches: caches,
		logger: logger,
	}
}

// Get retrieves value from the first level that has the key
func (mc *MultiCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	result := mc.GetWithLevel(ctx, key)
	return result.Data, result.Found, result.Err
}

// GetWithLevel tries each level in order. A level that errors is skipped; the
// error is reported only if no later level has the key. A hit on a deeper level
// is copied into the faster levels before it.
func (mc *MultiCache) GetWithLevel(ctx context.Context, key string) models.CacheResult {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for get operation", zap.String("key", key))
		return models.CacheResult{Level: models.CacheLevelMiss}
	}

	var lastErr error
	for i, cache := range mc.caches {
		val, found, err := cache.Get(ctx, key)
		if err != nil {
			mc.logger.Warn("Cache level get failed",
				zap.String("key", key),
				zap.String("level", string(levelOf(i))),
				zap.Error(err))
			lastErr = err
			continue
		}
		if !found {
			continue
		}

		mc.backfill(ctx, key, val, i)
		return models.CacheResult{Data: val, Found: true, Level: levelOf(i)}
	}

	return models.CacheResult{Level: models.CacheLevelMiss, Err: lastErr}
}

// Set stores value in every level, most durable first
func (mc *MultiCache) Set(ctx context.Context, key string, val []byte) error {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for set operation", zap.String("key", key))
		return nil
	}

	var errs []error
	for i := len(mc.caches) - 1; i >= 0; i-- {
		if err := mc.caches[i].Set(ctx, key, val); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Delete removes entry from all levels
func (mc *MultiCache) Delete(ctx context.Context, key string) error {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for delete operation", zap.String("key", key))
		return nil
	}

	var errs []error
	for _, cache := range mc.caches {
		if err := cache.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GetCacheCount returns the number of levels in the multi-cache
func (mc *MultiCache) GetCacheCount() int {
	return len(mc.caches)
}

func (mc *MultiCache) backfill(ctx context.Context, key string, val []byte, hitIndex int) {
	for i := 0; i < hitIndex; i++ {
		if err := mc.caches[i].Set(ctx, key, val); err != nil {
			mc.logger.Warn("Cache back-fill failed", zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError(string(levelOf(i)), "backfill")
		}
	}
}

func levelOf(i int) models.CacheLevel {
	if i == 0 {
		return models.CacheLevelL1
	}
	return models.CacheLevelL2
}
