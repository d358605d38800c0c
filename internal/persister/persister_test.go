package persister

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"go-player-tracker/internal/interfaces/mock"
	"go-player-tracker/internal/models"
)

func TestPersister_Persist(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSnapshotRepository(ctrl)
	p := New(repo, zaptest.NewLogger(t))

	at := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	player := &models.Player{ID: 3, Username: "zezima"}
	profile := &models.Profile{
		Username: "Zezima",
		Skills: models.SkillSummary{
			XP:     1000,
			Skills: []models.Skill{{HumanName: models.SkillMagic, XP: 1000, Level: 10}},
		},
	}

	repo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record *models.SnapshotRecord) (int64, error) {
			// records are keyed by the canonical name, not the upstream display name
			assert.Equal(t, "zezima", record.Username)
			assert.Equal(t, at, record.TakenAt)
			assert.Equal(t, int64(1000), record.TotalXP)
			assert.Equal(t, []models.SkillRow{{Name: models.SkillMagic, XP: 1000, Level: 10}}, record.Skills)
			return 42, nil
		})

	assert.NoError(t, p.Persist(context.Background(), player, profile, at))
}

func TestPersister_Persist_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSnapshotRepository(ctrl)
	p := New(repo, zaptest.NewLogger(t))

	dbErr := errors.New("database is locked")
	repo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(int64(0), dbErr)

	err := p.Persist(context.Background(), &models.Player{Username: "zezima"}, &models.Profile{}, time.Now())
	assert.ErrorIs(t, err, dbErr)
}

func TestPersister_Persist_RequiresInputs(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := New(mock.NewMockSnapshotRepository(ctrl), zaptest.NewLogger(t))

	assert.Error(t, p.Persist(context.Background(), nil, &models.Profile{}, time.Now()))
	assert.Error(t, p.Persist(context.Background(), &models.Player{Username: "zezima"}, nil, time.Now()))
}
