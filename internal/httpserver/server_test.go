package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"go-player-tracker/internal/interfaces/mock"
	"go-player-tracker/internal/models"
	"go-player-tracker/internal/registrar"
	"go-player-tracker/internal/tracker"
)

type serverMocks struct {
	players   *mock.MockPlayerResolver
	engine    *mock.MockFreshnessEngine
	progress  *mock.MockProgressReporter
	snapshots *mock.MockSnapshotRepository
}

func setupServer(t *testing.T) (*Server, *serverMocks) {
	ctrl := gomock.NewController(t)
	m := &serverMocks{
		players:   mock.NewMockPlayerResolver(ctrl),
		engine:    mock.NewMockFreshnessEngine(ctrl),
		progress:  mock.NewMockProgressReporter(ctrl),
		snapshots: mock.NewMockSnapshotRepository(ctrl),
	}
	server := NewServer(m.players, m.engine, m.progress, m.snapshots, zaptest.NewLogger(t))
	return server, m
}

func serve(server *Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	server.createRouter().ServeHTTP(w, req)
	return w
}

func testPlayer() *models.Player {
	return &models.Player{ID: 7, Username: "zezima"}
}

func testProfile() *models.Profile {
	return &models.Profile{
		Username: "Zezima",
		Skills: models.SkillSummary{
			XP:    1000,
			Level: 219,
			Skills: []models.Skill{
				{JagexID: 0, HumanName: models.SkillAttack, Level: 99, XP: 900},
				{JagexID: 6, HumanName: models.SkillMagic, Level: 120, XP: 100},
			},
		},
	}
}

func TestServer_HandlePlayer(t *testing.T) {
	fetchErr := fmt.Errorf("%w: %w", tracker.ErrFetchFailure, errors.New("context deadline exceeded"))
	persistErr := fmt.Errorf("%w: %w", tracker.ErrPersistenceFailure, errors.New("database is locked"))
	invalidErr := fmt.Errorf("%w: %q", registrar.ErrInvalidName, "averyveryverylongname")

	tests := []struct {
		name           string
		target         string
		setup          func(m *serverMocks)
		expectedStatus int
		expectedError  string
	}{
		{
			name:   "automatic request",
			target: "/players/Zezima",
			setup: func(m *serverMocks) {
				m.players.EXPECT().Ensure(gomock.Any(), "Zezima").Return(testPlayer(), true, nil)
				m.engine.EXPECT().GetFreshestData(gomock.Any(), testPlayer(), false).Return(testProfile(), nil)
				m.engine.EXPECT().RefreshInfo(gomock.Any(), testPlayer()).Return(models.RefreshInfo{Refreshable: true}, nil)
				m.progress.EXPECT().DailyGains(gomock.Any(), testPlayer(), testProfile()).Return(models.Gains{TotalXP: 50}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "manual refresh",
			target: "/players/zezima?refresh=true",
			setup: func(m *serverMocks) {
				m.players.EXPECT().Ensure(gomock.Any(), "zezima").Return(testPlayer(), true, nil)
				m.engine.EXPECT().GetFreshestData(gomock.Any(), testPlayer(), true).Return(testProfile(), nil)
				m.engine.EXPECT().RefreshInfo(gomock.Any(), testPlayer()).Return(models.RefreshInfo{}, nil)
				m.progress.EXPECT().DailyGains(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Gains{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid refresh flag",
			target:         "/players/zezima?refresh=maybe",
			setup:          func(m *serverMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid refresh parameter",
		},
		{
			name:   "unknown player",
			target: "/players/nobody",
			setup: func(m *serverMocks) {
				m.players.EXPECT().Ensure(gomock.Any(), "nobody").Return(nil, false, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "player not found",
		},
		{
			name:   "invalid name",
			target: "/players/averyveryverylongname",
			setup: func(m *serverMocks) {
				m.players.EXPECT().Ensure(gomock.Any(), gomock.Any()).Return(nil, false, invalidErr)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "fetch failure",
			target: "/players/zezima?refresh=true",
			setup: func(m *serverMocks) {
				m.players.EXPECT().Ensure(gomock.Any(), gomock.Any()).Return(testPlayer(), true, nil)
				m.engine.EXPECT().GetFreshestData(gomock.Any(), gomock.Any(), true).Return(nil, fetchErr)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  "refresh unavailable, try later",
		},
		{
			name:   "persistence failure",
			target: "/players/zezima",
			setup: func(m *serverMocks) {
				m.players.EXPECT().Ensure(gomock.Any(), gomock.Any()).Return(testPlayer(), true, nil)
				m.engine.EXPECT().GetFreshestData(gomock.Any(), gomock.Any(), false).Return(nil, persistErr)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal error",
		},
		{
			name:   "registry failure",
			target: "/players/zezima",
			setup: func(m *serverMocks) {
				m.players.EXPECT().Ensure(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("failed to look up player"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, m := setupServer(t)
			tt.setup(m)

			w := serve(server, tt.target)

			if w.Code != tt.expectedStatus {
				t.Fatalf("handlePlayer() status = %v, want %v, body %s", w.Code, tt.expectedStatus, w.Body.String())
			}

			if tt.expectedStatus != http.StatusOK {
				var response ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
					t.Fatalf("Failed to unmarshal error response: %v", err)
				}
				if response.Success {
					t.Errorf("handlePlayer() Success = true, want false")
				}
				if tt.expectedError != "" && response.Error != tt.expectedError {
					t.Errorf("handlePlayer() Error = %q, want %q", response.Error, tt.expectedError)
				}
				return
			}

			var response PlayerResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if !response.Success {
				t.Errorf("handlePlayer() Success = false, want true")
			}
			if response.Player == nil || response.Player.Username != "Zezima" {
				t.Errorf("handlePlayer() Player = %+v, want Zezima", response.Player)
			}
			if response.Gains == nil {
				t.Errorf("handlePlayer() Gains missing")
			}
			if len(response.Milestones.Below120) != 1 || len(response.Milestones.At120) != 1 {
				t.Errorf("handlePlayer() Milestones = %+v", response.Milestones)
			}
			if combat := response.Categories[models.CategoryCombat]; len(combat) != 2 || combat[0].HumanName != models.SkillAttack {
				t.Errorf("handlePlayer() Categories = %+v, want Attack and Magic under Combat", response.Categories)
			}
		})
	}
}

func TestServer_HandlePlayer_GainsFailureStillServesProfile(t *testing.T) {
	server, m := setupServer(t)

	m.players.EXPECT().Ensure(gomock.Any(), "zezima").Return(testPlayer(), true, nil)
	m.engine.EXPECT().GetFreshestData(gomock.Any(), gomock.Any(), false).Return(testProfile(), nil)
	m.engine.EXPECT().RefreshInfo(gomock.Any(), gomock.Any()).Return(models.RefreshInfo{Refreshable: true}, nil)
	m.progress.EXPECT().DailyGains(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Gains{}, errors.New("disk I/O error"))

	w := serve(server, "/players/zezima")

	if w.Code != http.StatusOK {
		t.Fatalf("handlePlayer() status = %v, want %v", w.Code, http.StatusOK)
	}

	var response PlayerResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Gains != nil {
		t.Errorf("handlePlayer() Gains = %+v, want omitted", response.Gains)
	}
	if response.Player == nil {
		t.Errorf("handlePlayer() Player missing")
	}
}

func TestServer_HandleRefreshInfo(t *testing.T) {
	server, m := setupServer(t)

	at := time.Date(2026, 10, 16, 12, 5, 0, 0, time.UTC)
	last := at.Add(-5 * time.Minute)

	m.players.EXPECT().Ensure(gomock.Any(), "zezima").Return(testPlayer(), true, nil)
	m.engine.EXPECT().RefreshInfo(gomock.Any(), testPlayer()).Return(models.RefreshInfo{
		Refreshable:   false,
		RefreshableAt: &at,
		LastRefresh:   &last,
	}, nil)

	w := serve(server, "/players/zezima/refresh-info")

	if w.Code != http.StatusOK {
		t.Fatalf("handleRefreshInfo() status = %v, want %v", w.Code, http.StatusOK)
	}

	var response RefreshInfoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Username != "zezima" {
		t.Errorf("handleRefreshInfo() Username = %q, want zezima", response.Username)
	}
	if response.RefreshInfo.Refreshable {
		t.Errorf("handleRefreshInfo() Refreshable = true, want false")
	}
	if response.RefreshInfo.RefreshableAt == nil || !response.RefreshInfo.RefreshableAt.Equal(at) {
		t.Errorf("handleRefreshInfo() RefreshableAt = %v, want %v", response.RefreshInfo.RefreshableAt, at)
	}
}

func TestServer_HandleRefreshInfo_UnknownPlayer(t *testing.T) {
	server, m := setupServer(t)

	m.players.EXPECT().Ensure(gomock.Any(), "nobody").Return(nil, false, nil)

	w := serve(server, "/players/nobody/refresh-info")

	if w.Code != http.StatusNotFound {
		t.Errorf("handleRefreshInfo() status = %v, want %v", w.Code, http.StatusNotFound)
	}
}

func TestServer_HandleSnapshots(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedLimit  int
		repoErr        error
		expectedStatus int
	}{
		{
			name:           "default limit",
			target:         "/players/zezima/snapshots",
			expectedLimit:  defaultSnapshotLimit,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "explicit limit",
			target:         "/players/zezima/snapshots?limit=5",
			expectedLimit:  5,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "limit is capped",
			target:         "/players/zezima/snapshots?limit=5000",
			expectedLimit:  maxSnapshotLimit,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non-numeric limit",
			target:         "/players/zezima/snapshots?limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero limit",
			target:         "/players/zezima/snapshots?limit=0",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "repository error",
			target:         "/players/zezima/snapshots",
			expectedLimit:  defaultSnapshotLimit,
			repoErr:        errors.New("database is locked"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, m := setupServer(t)

			if tt.expectedLimit > 0 {
				m.players.EXPECT().Ensure(gomock.Any(), "zezima").Return(testPlayer(), true, nil)
				records := []models.SnapshotRecord{{ID: 2, Username: "zezima"}, {ID: 1, Username: "zezima"}}
				if tt.repoErr != nil {
					records = nil
				}
				m.snapshots.EXPECT().ListSnapshots(gomock.Any(), "zezima", tt.expectedLimit).Return(records, tt.repoErr)
			}

			w := serve(server, tt.target)

			if w.Code != tt.expectedStatus {
				t.Fatalf("handleSnapshots() status = %v, want %v", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var response SnapshotsResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if len(response.Snapshots) != 2 || response.Snapshots[0].ID != 2 {
				t.Errorf("handleSnapshots() Snapshots = %+v, want newest first", response.Snapshots)
			}
		})
	}
}

func TestServer_HandleSnapshots_EmptyHistory(t *testing.T) {
	server, m := setupServer(t)

	m.players.EXPECT().Ensure(gomock.Any(), "zezima").Return(testPlayer(), true, nil)
	m.snapshots.EXPECT().ListSnapshots(gomock.Any(), "zezima", defaultSnapshotLimit).Return(nil, nil)

	w := serve(server, "/players/zezima/snapshots")

	if w.Code != http.StatusOK {
		t.Fatalf("handleSnapshots() status = %v, want %v", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if snapshots, ok := response["snapshots"].([]interface{}); !ok || len(snapshots) != 0 {
		t.Errorf("handleSnapshots() snapshots = %v, want empty array", response["snapshots"])
	}
}

func TestServer_UnknownMethod(t *testing.T) {
	server, _ := setupServer(t)

	req := httptest.NewRequest("POST", "/players/zezima", nil)
	w := httptest.NewRecorder()
	server.createRouter().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /players/zezima status = %v, want %v", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestServer_HandleHealth(t *testing.T) {
	server, _ := setupServer(t)

	w := serve(server, "/health")

	if w.Code != http.StatusOK {
		t.Errorf("handleHealth() status = %v, want %v", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal health response: %v", err)
	}

	if status, ok := response["status"]; !ok || status != "healthy" {
		t.Errorf("handleHealth() status = %v, want 'healthy'", status)
	}
}

func TestServer_Metrics(t *testing.T) {
	server, _ := setupServer(t)

	w := serve(server, "/metrics")

	if w.Code != http.StatusOK {
		t.Errorf("GET /metrics status = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", defaultSnapshotLimit, false},
		{"1", 1, false},
		{"101", maxSnapshotLimit, false},
		{"-3", 0, true},
		{"ten", 0, true},
	}

	for _, tt := range tests {
		got, err := parseLimit(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLimit(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestServer_StartUnixSocketAndStop(t *testing.T) {
	server, _ := setupServer(t)
	socketPath := filepath.Join(t.TempDir(), "api.sock")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(unixPrefix + socketPath)
	}()

	client := &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", socketPath)
			},
		},
		Timeout: time.Second,
	}

	var resp *http.Response
	var err error
	for i := 0; i < 50; i++ {
		resp, err = client.Get("http://tracker/health")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never became reachable: %v", err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health status = %v, want %v", resp.StatusCode, http.StatusOK)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("Start() error = %v, want http.ErrServerClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start() did not return after Stop()")
	}
}
