package l1

import (
	"context"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"go-player-tracker/internal/interfaces"
	"go-player-tracker/internal/metrics"
	"go-player-tracker/internal/scheduler"
)

// Entries of a store created with a zero life window are kept until evicted for space.
const unboundedLifeWindow = 10 * 365 * 24 * time.Hour

// Ensure BigCache implements interfaces.Cache
var _ interfaces.Cache = (*BigCache)(nil)

// BigCache implements an in-process byte store using BigCache
type BigCache struct {
	cache            *bigcache.BigCache
	logger           *zap.Logger
	metricsLevel     string
	metricsScheduler *scheduler.Scheduler
}

// Option customises a BigCache
type Option func(*BigCache)

// WithMetricsLevel sets the level label used for capacity metrics (default "l1")
func WithMetricsLevel(level string) Option {
	return func(bc *BigCache) {
		bc.metricsLevel = level
	}
}

// NewBigCache creates a new BigCache instance. sizeMB caps memory use; entries
// older than lifeWindow are dropped, and a zero lifeWindow keeps them indefinitely.
func NewBigCache(sizeMB int, lifeWindow time.Duration, logger *zap.Logger, opts ...Option) (*BigCache, error) {
	cfg := bigcache.DefaultConfig(lifeWindow)
	if lifeWindow <= 0 {
		cfg.LifeWindow = unboundedLifeWindow
		cfg.CleanWindow = 0
	}
	cfg.HardMaxCacheSize = sizeMB
	cfg.Verbose = false
	cfg.MaxEntrySize = 1024 * 1024 // 1MB max entry size

	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	bc := &BigCache{
		cache:        cache,
		logger:       logger,
		metricsLevel: "l1",
	}
	for _, opt := range opts {
		opt(bc)
	}

	bc.startMetricsCollection()

	return bc, nil
}

// Get retrieves a value; a missing key is a miss, not an error
func (bc *BigCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := bc.cache.Get(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		metrics.RecordCacheError(bc.metricsLevel, "read")
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value
func (bc *BigCache) Set(_ context.Context, key string, val []byte) error {
	if err := bc.cache.Set(key, val); err != nil {
		bc.logger.Error("Failed to set cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError(bc.metricsLevel, "write")
		return err
	}
	return nil
}

// Delete removes an entry; deleting a missing key succeeds
func (bc *BigCache) Delete(_ context.Context, key string) error {
	err := bc.cache.Delete(key)
	if err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return err
	}
	return nil
}

// Close closes the cache
func (bc *BigCache) Close() error {
	bc.stopMetricsCollection()
	return bc.cache.Close()
}

// GetStats returns the allocated capacity in bytes and the number of entries
func (bc *BigCache) GetStats() (capacity, entries int64) {
	return int64(bc.cache.Capacity()), int64(bc.cache.Len())
}

func (bc *BigCache) startMetricsCollection() {
	bc.metricsScheduler = scheduler.New(30*time.Second, bc.updateMetrics)
	bc.metricsScheduler.Start()

	// Initial collection
	bc.updateMetrics()

	bc.logger.Debug("Started cache metrics collection", zap.String("level", bc.metricsLevel))
}

func (bc *BigCache) stopMetricsCollection() {
	if bc.metricsScheduler != nil {
		bc.metricsScheduler.Stop()
		bc.logger.Debug("Stopped cache metrics collection", zap.String("level", bc.metricsLevel))
	}
}

func (bc *BigCache) updateMetrics() {
	capacity, entries := bc.GetStats()
	metrics.UpdateCacheCapacity(bc.metricsLevel, capacity, entries)
}
