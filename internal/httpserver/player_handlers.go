package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"go-player-tracker/internal/models"
	"go-player-tracker/internal/progress"
)

const (
	defaultSnapshotLimit = 20
	maxSnapshotLimit     = 100
)

// resolvePlayer loads the player named in the route, writing the error
// response itself when it returns nil
func (s *Server) resolvePlayer(w http.ResponseWriter, r *http.Request) *models.Player {
	name := mux.Vars(r)["name"]

	player, found, err := s.players.Ensure(r.Context(), name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return nil
	}
	if !found {
		s.writeErrorResponse(w, "player not found", http.StatusNotFound)
		return nil
	}
	return player
}

// handlePlayer serves the freshest profile together with progress data
func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	manual, err := parseRefreshFlag(r.URL.Query().Get("refresh"))
	if err != nil {
		s.writeErrorResponse(w, "Invalid refresh parameter", http.StatusBadRequest)
		return
	}

	player := s.resolvePlayer(w, r)
	if player == nil {
		return
	}

	profile, err := s.engine.GetFreshestData(r.Context(), player, manual)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	info, err := s.engine.RefreshInfo(r.Context(), player)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	response := &PlayerResponse{
		Success:     true,
		Player:      profile,
		RefreshInfo: info,
		Milestones:  progress.Milestones(profile),
		Categories:  progress.ByCategory(profile),
	}

	// gains are informational; a history read failure still serves the profile
	gains, err := s.progress.DailyGains(r.Context(), player, profile)
	if err != nil {
		s.logger.Warn("Failed to compute daily gains", zap.String("player", player.Username), zap.Error(err))
	} else {
		response.Gains = &gains
	}

	s.writeResponse(w, response)
}

// handleRefreshInfo reports the manual refresh state of a player
func (s *Server) handleRefreshInfo(w http.ResponseWriter, r *http.Request) {
	player := s.resolvePlayer(w, r)
	if player == nil {
		return
	}

	info, err := s.engine.RefreshInfo(r.Context(), player)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeResponse(w, &RefreshInfoResponse{
		Success:     true,
		Username:    player.Username,
		RefreshInfo: info,
	})
}

// handleSnapshots lists stored snapshots of a player
func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		s.writeErrorResponse(w, "Invalid limit parameter", http.StatusBadRequest)
		return
	}

	player := s.resolvePlayer(w, r)
	if player == nil {
		return
	}

	snapshots, err := s.snapshots.ListSnapshots(r.Context(), player.Username, limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if snapshots == nil {
		snapshots = []models.SnapshotRecord{}
	}

	s.writeResponse(w, &SnapshotsResponse{
		Success:   true,
		Username:  player.Username,
		Snapshots: snapshots,
	})
}

func parseRefreshFlag(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultSnapshotLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if limit <= 0 {
		return 0, strconv.ErrRange
	}
	return min(limit, maxSnapshotLimit), nil
}
