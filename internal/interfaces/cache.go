package interfaces

import (
	"context"

	"go-player-tracker/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// Cache defines the contract for byte-oriented key-value store levels
type Cache interface {
	// Get returns the stored value and a found flag; absence is not an error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores the value, replacing any previous one
	Set(ctx context.Context, key string, val []byte) error
	// Delete removes the key
	Delete(ctx context.Context, key string) error
}

// LevelAwareCache reports which cache level served a hit
type LevelAwareCache interface {
	Cache
	GetWithLevel(ctx context.Context, key string) models.CacheResult
}
