package interfaces

import (
	"context"
	"time"

	"go-player-tracker/internal/models"
)

//go:generate mockgen -package=mock -source=repository.go -destination=mock/repository.go

// PlayerRepository stores registered players
type PlayerRepository interface {
	// FindPlayer looks a player up by canonical username
	FindPlayer(ctx context.Context, username string) (*models.Player, bool, error)
	// CreatePlayer inserts the player unless it exists and returns the stored row
	CreatePlayer(ctx context.Context, username string, at time.Time) (*models.Player, error)
}

// SnapshotRepository stores historical snapshots
type SnapshotRepository interface {
	// SaveSnapshot upserts the player and appends the snapshot in one transaction
	SaveSnapshot(ctx context.Context, record *models.SnapshotRecord) (int64, error)
	// ListSnapshots returns the newest snapshots first
	ListSnapshots(ctx context.Context, username string, limit int) ([]models.SnapshotRecord, error)
	// FirstSnapshotSince returns the oldest snapshot taken at or after since
	FirstSnapshotSince(ctx context.Context, username string, since time.Time) (*models.SnapshotRecord, bool, error)
}
