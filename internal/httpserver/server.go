package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-player-tracker/internal/interfaces"
	"go-player-tracker/internal/registrar"
	"go-player-tracker/internal/tracker"
)

const unixPrefix = "unix:"

// Server represents the player tracker HTTP API
type Server struct {
	players   interfaces.PlayerResolver
	engine    interfaces.FreshnessEngine
	progress  interfaces.ProgressReporter
	snapshots interfaces.SnapshotRepository
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a new HTTP API server
func NewServer(
	players interfaces.PlayerResolver,
	engine interfaces.FreshnessEngine,
	progress interfaces.ProgressReporter,
	snapshots interfaces.SnapshotRepository,
	logger *zap.Logger,
) *Server {
	s := &Server{
		players:   players,
		engine:    engine,
		progress:  progress,
		snapshots: snapshots,
		logger:    logger,
	}
	s.server = &http.Server{
		Handler:      s.createRouter(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start serves the API on addr. An addr of the form "unix:/path" listens on a
// Unix socket, anything else on TCP.
func (s *Server) Start(addr string) error {
	listener, err := s.listen(addr)
	if err != nil {
		return err
	}

	s.logger.Info("Starting player tracker HTTP server", zap.String("addr", addr))
	return s.server.Serve(listener)
}

func (s *Server) listen(addr string) (net.Listener, error) {
	socketPath, isUnix := strings.CutPrefix(addr, unixPrefix)
	if !isUnix {
		return net.Listen("tcp", addr)
	}

	if err := os.RemoveAll(socketPath); err != nil {
		s.logger.Warn("Failed to remove existing socket file", zap.String("path", socketPath), zap.Error(err))
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, err
	}

	if err := os.Chmod(socketPath, 0660); err != nil {
		s.logger.Warn("Failed to set socket permissions", zap.String("path", socketPath), zap.Error(err))
	}
	return listener, nil
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping player tracker HTTP server")
	return s.server.Shutdown(ctx)
}

// createRouter creates and configures the HTTP router
func (s *Server) createRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/players/{name}", s.handlePlayer).Methods("GET")
	router.HandleFunc("/players/{name}/refresh-info", s.handleRefreshInfo).Methods("GET")
	router.HandleFunc("/players/{name}/snapshots", s.handleSnapshots).Methods("GET")

	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := ErrorResponse{
		Success: false,
		Error:   message,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}

// writeServiceError maps domain errors onto HTTP statuses
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, registrar.ErrInvalidName):
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, tracker.ErrFetchFailure):
		s.logger.Warn("Upstream refresh failed", zap.String("path", r.URL.Path), zap.Error(err))
		s.writeErrorResponse(w, "refresh unavailable, try later", http.StatusServiceUnavailable)
	default:
		s.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
		s.writeErrorResponse(w, "internal error", http.StatusInternalServerError)
	}
}
