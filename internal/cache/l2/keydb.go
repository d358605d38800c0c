package l2

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-player-tracker/internal/config"
	"go-player-tracker/internal/interfaces"
	"go-player-tracker/internal/metrics"
)

// Ensure KeyDBCache implements interfaces.Cache
var _ interfaces.Cache = (*KeyDBCache)(nil)

// KeyDBCache implements the durable byte store on Redis/KeyDB.
// Values are stored without expiry; freshness is decided by the caller.
type KeyDBCache struct {
	client interfaces.KeyDbClient
	config *config.Config
	logger *zap.Logger
}

// NewKeyDBCache creates a new KeyDBCache instance with provided client
func NewKeyDBCache(cfg *config.Config, client interfaces.KeyDbClient, logger *zap.Logger) *KeyDBCache {
	return &KeyDBCache{
		client: client,
		config: cfg,
		logger: logger,
	}
}

// Get retrieves a value. redis.Nil is reported as a miss; transport errors are returned.
func (kc *KeyDBCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, kc.config.GetReadTimeout())
	defer cancel()

	data, err := kc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		kc.logger.Error("L2 cache get error", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "read")
		return nil, false, err
	}

	return data, true, nil
}

// Set stores a value without expiration
func (kc *KeyDBCache) Set(ctx context.Context, key string, val []byte) error {
	ctx, cancel := context.WithTimeout(ctx, kc.config.GetSendTimeout())
	defer cancel()

	if err := kc.client.Set(ctx, key, val, 0).Err(); err != nil {
		kc.logger.Error("Failed to set L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "write")
		return err
	}
	return nil
}

// Delete removes an entry
func (kc *KeyDBCache) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, kc.config.GetSendTimeout())
	defer cancel()

	if err := kc.client.Del(ctx, key).Err(); err != nil {
		kc.logger.Error("Failed to delete L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "delete")
		return err
	}
	return nil
}

// Close closes the KeyDB connection
func (kc *KeyDBCache) Close() error {
	return kc.client.Close()
}
