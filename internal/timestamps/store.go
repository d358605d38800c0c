package timestamps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"go-player-tracker/internal/interfaces"
	"go-player-tracker/internal/metrics"
)

// Ensure Store implements interfaces.TimestampStore
var _ interfaces.TimestampStore = (*Store)(nil)

// Store keeps millisecond timestamps as decimal strings in a durable byte store
type Store struct {
	backend interfaces.Cache
	logger  *zap.Logger
}

// NewStore creates a timestamp store over the given backend
func NewStore(backend interfaces.Cache, logger *zap.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger,
	}
}

// Get returns the stored timestamp. Unset and malformed values read as 0;
// backend failures are returned.
func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	data, found, err := s.backend.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to read timestamp %s: %w", key, err)
	}
	if !found {
		return 0, nil
	}

	value, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		s.logger.Warn("Ignoring malformed timestamp",
			zap.String("key", key),
			zap.ByteString("value", data),
			zap.Error(err))
		metrics.RecordCacheError("timestamps", "decode")
		return 0, nil
	}

	return value, nil
}

// Set stores the timestamp
func (s *Store) Set(ctx context.Context, key string, value int64) error {
	if err := s.backend.Set(ctx, key, []byte(strconv.FormatInt(value, 10))); err != nil {
		return fmt.Errorf("failed to write timestamp %s: %w", key, err)
	}
	return nil
}
