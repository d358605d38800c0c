package interfaces

import (
	"context"

	"go-player-tracker/internal/models"
)

//go:generate mockgen -package=mock -source=snapshot_cache.go -destination=mock/snapshot_cache.go

// SnapshotCache holds the most recently fetched profile per player
type SnapshotCache interface {
	// Get returns the cached profile; a miss is reported with found=false
	Get(ctx context.Context, username string) (*models.Profile, bool)
	// Set replaces the cached profile
	Set(ctx context.Context, username string, profile *models.Profile) error
}
