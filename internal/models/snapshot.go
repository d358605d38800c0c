package models

import "time"

// SnapshotRecord is the immutable historical copy of a Profile
type SnapshotRecord struct {
	ID               int64      `json:"id"`
	PlayerID         int64      `json:"player_id"`
	Username         string     `json:"username"`
	TakenAt          time.Time  `json:"taken_at"`
	Rank             int64      `json:"rank"`
	TotalXP          int64      `json:"total_xp"`
	TotalSkill       int64      `json:"total_skill"`
	CombatLevel      int64      `json:"combat_level"`
	LoggedIn         bool       `json:"logged_in"`
	QuestsCompleted  int        `json:"quests_completed"`
	QuestsInProgress int        `json:"quests_in_progress"`
	QuestsNotStarted int        `json:"quests_not_started"`
	Skills           []SkillRow `json:"skills"`
	Quests           []QuestRow `json:"quests"`
}

// SkillRow is one persisted skill value of a snapshot
type SkillRow struct {
	Name  SkillName `json:"name"`
	XP    int64     `json:"xp"`
	Rank  int64     `json:"rank"`
	Level int64     `json:"level"`
}

// QuestRow is one persisted quest value of a snapshot
type QuestRow struct {
	Title        string      `json:"title"`
	Status       QuestStatus `json:"status"`
	Difficulty   int         `json:"difficulty"`
	Members      bool        `json:"members"`
	QuestPoints  int         `json:"quest_points"`
	UserEligible bool        `json:"user_eligible"`
}

// NewSnapshotRecord derives a snapshot record from a fetched profile
func NewSnapshotRecord(username string, profile *Profile, takenAt time.Time) *SnapshotRecord {
	record := &SnapshotRecord{
		Username:         username,
		TakenAt:          takenAt,
		Rank:             profile.Skills.Rank,
		TotalXP:          profile.Skills.XP,
		TotalSkill:       profile.Skills.Level,
		CombatLevel:      profile.Skills.CombatLevel,
		LoggedIn:         profile.LoggedIn,
		QuestsCompleted:  profile.Quests.Completed,
		QuestsInProgress: profile.Quests.InProgress,
		QuestsNotStarted: profile.Quests.NotStarted,
		Skills:           make([]SkillRow, 0, len(profile.Skills.Skills)),
		Quests:           make([]QuestRow, 0, len(profile.Quests.Quests)),
	}

	for _, s := range profile.Skills.Skills {
		record.Skills = append(record.Skills, SkillRow{
			Name:  s.HumanName,
			XP:    s.XP,
			Rank:  s.Rank,
			Level: s.Level,
		})
	}

	for _, q := range profile.Quests.Quests {
		record.Quests = append(record.Quests, QuestRow{
			Title:        q.Title,
			Status:       q.Status,
			Difficulty:   q.Difficulty,
			Members:      q.Members,
			QuestPoints:  q.QuestPoints,
			UserEligible: q.Eligible,
		})
	}

	return record
}

// Gains holds per-skill progress since a baseline snapshot
type Gains struct {
	Since       *time.Time          `json:"since,omitempty"`
	Levels      map[SkillName]int64 `json:"levels"`
	XP          map[SkillName]int64 `json:"xp"`
	TotalLevels int64               `json:"total_levels"`
	TotalXP     int64               `json:"total_xp"`
}

// Milestones buckets skills by level thresholds
type Milestones struct {
	Below99  []SkillName `json:"below_99"`
	Below120 []SkillName `json:"below_120"`
	At120    []SkillName `json:"at_120"`
}
