package interfaces

import (
	"context"
	"time"

	"go-player-tracker/internal/models"
)

//go:generate mockgen -package=mock -source=persister.go -destination=mock/persister.go

// SnapshotPersister durably records a fetched profile
type SnapshotPersister interface {
	Persist(ctx context.Context, player *models.Player, profile *models.Profile, at time.Time) error
}
