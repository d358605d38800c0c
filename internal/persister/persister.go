package persister

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-player-tracker/internal/interfaces"
	"go-player-tracker/internal/metrics"
	"go-player-tracker/internal/models"
)

// Ensure Persister implements interfaces.SnapshotPersister
var _ interfaces.SnapshotPersister = (*Persister)(nil)

// Persister turns fetched profiles into snapshot records
type Persister struct {
	snapshots interfaces.SnapshotRepository
	logger    *zap.Logger
}

// New creates a Persister
func New(snapshots interfaces.SnapshotRepository, logger *zap.Logger) *Persister {
	return &Persister{
		snapshots: snapshots,
		logger:    logger,
	}
}

// Persist records the profile as a snapshot of player taken at at
func (p *Persister) Persist(ctx context.Context, player *models.Player, profile *models.Profile, at time.Time) error {
	if player == nil || profile == nil {
		return errors.New("player and profile are required")
	}

	record := models.NewSnapshotRecord(player.Username, profile, at)
	id, err := p.snapshots.SaveSnapshot(ctx, record)
	if err != nil {
		metrics.RecordPersistError()
		return fmt.Errorf("failed to save snapshot for %s: %w", player.Username, err)
	}

	metrics.RecordSnapshotPersisted()
	p.logger.Debug("Persisted snapshot",
		zap.String("player", player.Username),
		zap.Int64("snapshot_id", id),
		zap.Int("skills", len(record.Skills)),
		zap.Int("quests", len(record.Quests)))
	return nil
}
