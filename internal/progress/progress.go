package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"go-player-tracker/internal/interfaces"
	"go-player-tracker/internal/models"
)

var _ interfaces.ProgressReporter = (*Service)(nil)

// Service computes progress of a live profile against stored snapshots
type Service struct {
	snapshots interfaces.SnapshotRepository
	clock     clockwork.Clock
}

// New creates a progress Service
func New(snapshots interfaces.SnapshotRepository, clock clockwork.Clock) *Service {
	return &Service{
		snapshots: snapshots,
		clock:     clock,
	}
}

// DailyGains compares profile with the first snapshot taken since the start
// of the current UTC day. Without such a snapshot all gains are zero.
func (s *Service) DailyGains(ctx context.Context, player *models.Player, profile *models.Profile) (models.Gains, error) {
	now := s.clock.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	gains := models.Gains{
		Levels: map[models.SkillName]int64{},
		XP:     map[models.SkillName]int64{},
	}

	baseline, found, err := s.snapshots.FirstSnapshotSince(ctx, player.Username, midnight)
	if err != nil {
		return models.Gains{}, fmt.Errorf("failed to load baseline snapshot: %w", err)
	}
	if !found {
		return gains, nil
	}

	since := baseline.TakenAt
	gains.Since = &since
	gains.TotalLevels = profile.Skills.Level - baseline.TotalSkill
	gains.TotalXP = profile.Skills.XP - baseline.TotalXP

	for _, prev := range baseline.Skills {
		skill, ok := profile.SkillByName(prev.Name)
		if !ok {
			continue
		}
		gains.Levels[prev.Name] = skill.Level - prev.Level
		gains.XP[prev.Name] = skill.XP - prev.XP
	}

	return gains, nil
}

// Milestones buckets the profile's skills by level: below 99, 99 to 119, and 120
func Milestones(profile *models.Profile) models.Milestones {
	m := models.Milestones{
		Below99:  []models.SkillName{},
		Below120: []models.SkillName{},
		At120:    []models.SkillName{},
	}
	for _, skill := range profile.Skills.Skills {
		switch {
		case skill.Level < 99:
			m.Below99 = append(m.Below99, skill.HumanName)
		case skill.Level < 120:
			m.Below120 = append(m.Below120, skill.HumanName)
		default:
			m.At120 = append(m.At120, skill.HumanName)
		}
	}
	return m
}

// ByCategory groups the profile's skills by category, keeping profile order
func ByCategory(profile *models.Profile) map[models.SkillCategory][]models.Skill {
	groups := make(map[models.SkillCategory][]models.Skill, len(models.SkillCategories))
	for _, skill := range profile.Skills.Skills {
		category, ok := models.CategoryOf(skill.HumanName)
		if !ok {
			continue
		}
		groups[category] = append(groups[category], skill)
	}
	return groups
}
