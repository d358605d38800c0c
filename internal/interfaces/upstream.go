package interfaces

import (
	"context"

	"go-player-tracker/internal/models"
)

//go:generate mockgen -package=mock -source=upstream.go -destination=mock/upstream.go

// ProfileFetcher retrieves a full profile from the upstream statistics API
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (*models.Profile, error)
}

// ExistenceChecker reports whether players exist upstream.
// The returned map is keyed by lower-cased name.
type ExistenceChecker interface {
	CheckExistence(ctx context.Context, names []string) (map[string]bool, error)
}
