package interfaces

import (
	"context"

	"go-player-tracker/internal/models"
)

//go:generate mockgen -package=mock -source=services.go -destination=mock/services.go

// PlayerResolver maps a requested name to a registered player.
// found=false with a nil error means the player does not exist.
type PlayerResolver interface {
	Ensure(ctx context.Context, name string) (*models.Player, bool, error)
}

// FreshnessEngine serves the freshest available profile for a player
type FreshnessEngine interface {
	GetFreshestData(ctx context.Context, player *models.Player, manual bool) (*models.Profile, error)
	RefreshInfo(ctx context.Context, player *models.Player) (models.RefreshInfo, error)
}

// ProgressReporter computes progress of a profile against stored history
type ProgressReporter interface {
	DailyGains(ctx context.Context, player *models.Player, profile *models.Profile) (models.Gains, error)
}
