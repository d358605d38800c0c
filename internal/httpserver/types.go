package httpserver

import "go-player-tracker/internal/models"

// PlayerResponse is the payload of the player overview endpoint
type PlayerResponse struct {
	Success     bool                                    `json:"success"`
	Player      *models.Profile                         `json:"player"`
	RefreshInfo models.RefreshInfo                      `json:"refresh_info"`
	Gains       *models.Gains                           `json:"gains,omitempty"`
	Milestones  models.Milestones                       `json:"milestones"`
	Categories  map[models.SkillCategory][]models.Skill `json:"categories"`
}

// RefreshInfoResponse reports whether a manual refresh is allowed
type RefreshInfoResponse struct {
	Success     bool               `json:"success"`
	Username    string             `json:"username"`
	RefreshInfo models.RefreshInfo `json:"refresh_info"`
}

// SnapshotsResponse lists stored snapshots, newest first
type SnapshotsResponse struct {
	Success   bool                    `json:"success"`
	Username  string                  `json:"username"`
	Snapshots []models.SnapshotRecord `json:"snapshots"`
}

// ErrorResponse is written for every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
