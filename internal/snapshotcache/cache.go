package snapshotcache

import (
	"context"

	"go.uber.org/zap"

	"go-player-tracker/internal/interfaces"
	"go-player-tracker/internal/metrics"
	"go-player-tracker/internal/models"
)

// Ensure Cache implements interfaces.SnapshotCache
var _ interfaces.SnapshotCache = (*Cache)(nil)

// Cache stores the latest fetched profile of each player
type Cache struct {
	store      interfaces.LevelAwareCache
	keyBuilder interfaces.KeyBuilder
	codec      *Codec
	logger     *zap.Logger
}

// New creates a snapshot cache over a level-aware byte store
func New(store interfaces.LevelAwareCache, keyBuilder interfaces.KeyBuilder, codec *Codec, logger *zap.Logger) *Cache {
	return &Cache{
		store:      store,
		keyBuilder: keyBuilder,
		codec:      codec,
		logger:     logger,
	}
}

// Get returns the cached profile. Store errors and undecodable entries are
// reported as a miss; undecodable entries are also removed.
func (c *Cache) Get(ctx context.Context, username string) (*models.Profile, bool) {
	key := c.keyBuilder.DataKey(username)

	result := c.store.GetWithLevel(ctx, key)
	if result.Err != nil {
		c.logger.Warn("Snapshot cache read failed", zap.String("player", username), zap.Error(result.Err))
		metrics.RecordCacheError("snapshot", "read")
	}
	if !result.Found {
		metrics.RecordCacheMiss()
		return nil, false
	}

	profile, err := c.codec.Decode(result.Data)
	if err != nil {
		c.logger.Warn("Dropping undecodable snapshot cache entry",
			zap.String("player", username),
			zap.String("level", string(result.Level)),
			zap.Error(err))
		metrics.RecordCacheError("snapshot", "decode")
		if err := c.store.Delete(ctx, key); err != nil {
			c.logger.Warn("Failed to delete snapshot cache entry", zap.String("player", username), zap.Error(err))
		}
		metrics.RecordCacheMiss()
		return nil, false
	}

	metrics.RecordCacheHit(string(result.Level))
	return profile, true
}

// Set replaces the cached profile
func (c *Cache) Set(ctx context.Context, username string, profile *models.Profile) error {
	data, err := c.codec.Encode(profile)
	if err != nil {
		metrics.RecordCacheError("snapshot", "encode")
		return err
	}
	return c.store.Set(ctx, c.keyBuilder.DataKey(username), data)
}
