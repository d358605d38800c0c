package models

import "time"

// QuestStatus is the RuneMetrics quest state
type QuestStatus string

const (
	QuestStatusCompleted  QuestStatus = "COMPLETED"
	QuestStatusStarted    QuestStatus = "STARTED"
	QuestStatusNotStarted QuestStatus = "NOT_STARTED"
)

// Profile is a full point-in-time statistics payload for a player.
// A Profile is never mutated after it is fetched; each fetch produces a new one.
type Profile struct {
	Username   string       `json:"Username"`
	LoggedIn   bool         `json:"LoggedIn"`
	Activities []Activity   `json:"Activities,omitempty"`
	Skills     SkillSummary `json:"Skills"`
	Quests     QuestSummary `json:"Quests"`
}

// SkillSummary holds aggregate totals plus per-skill values
type SkillSummary struct {
	Rank        int64   `json:"Rank"`
	XP          int64   `json:"XP"`
	Level       int64   `json:"Level"`
	CombatLevel int64   `json:"CombatLevel"`
	Skills      []Skill `json:"Skills"`
}

// Skill is a single skill entry of a profile
type Skill struct {
	JagexID   int       `json:"JagexID"`
	HumanName SkillName `json:"HumanName"`
	XP        int64     `json:"XP"`
	Rank      int64     `json:"Rank"`
	Level     int64     `json:"Level"`
}

// QuestSummary holds quest counts by status plus per-quest rows
type QuestSummary struct {
	Completed  int     `json:"Completed"`
	InProgress int     `json:"InProgress"`
	NotStarted int     `json:"NotStarted"`
	Quests     []Quest `json:"Quests"`
}

// Quest is a single quest entry of a profile
type Quest struct {
	Title       string      `json:"Title"`
	Status      QuestStatus `json:"Status"`
	Difficulty  int         `json:"Difficulty"`
	Members     bool        `json:"Members"`
	QuestPoints int         `json:"QuestPoints"`
	Eligible    bool        `json:"Eligible"`
}

// Activity is an adventurer log entry. Activities are cached but not persisted.
type Activity struct {
	Date    string `json:"Date"`
	Details string `json:"Details"`
	Text    string `json:"Text"`
}

// SkillByName returns the skill entry with the given name
func (p *Profile) SkillByName(name SkillName) (Skill, bool) {
	for _, s := range p.Skills.Skills {
		if s.HumanName == name {
			return s, true
		}
	}
	return Skill{}, false
}

// RefreshInfo describes whether a manual refresh is currently allowed
type RefreshInfo struct {
	Refreshable   bool       `json:"refreshable"`
	RefreshableAt *time.Time `json:"refreshable_at"`
	LastRefresh   *time.Time `json:"last_refresh,omitempty"`
}
