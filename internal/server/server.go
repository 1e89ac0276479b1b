// Package server exposes the pipeline over HTTP: start a run, poll its
// status, download the finished report. One run is active at a time
// because runs share the downloads directory.
package server

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"reelscribe/internal/core/domain"
	"reelscribe/internal/service"
)

// Runner is the pipeline capability the server drives.
// *service.Orchestrator satisfies it.
type Runner interface {
	Run(ctx context.Context, req service.RunRequest, status *service.Status) (*domain.Report, string, error)
}

// Server holds the HTTP surface and per-session run state.
type Server struct {
	runner       Runner
	defaultLimit int
	log          *zap.SugaredLogger

	mu       sync.Mutex
	active   bool
	sessions map[string]*service.Status
}

// New creates a Server around a pipeline runner.
func New(runner Runner, defaultLimit int, log *zap.SugaredLogger) *Server {
	return &Server{
		runner:       runner,
		defaultLimit: defaultLimit,
		log:          log,
		sessions:     make(map[string]*service.Status),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/start_processing", s.handleStart)
	router.GET("/status/:session_id", s.handleStatus)
	router.GET("/download/:session_id", s.handleDownload)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

type startRequest struct {
	URL       string `json:"url"`
	Limit     int    `json:"limit"`
	Language  string `json:"language"`
	KeepFiles bool   `json:"keep_files"`
}

func (s *Server) handleStart(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Instagram URL is required"})
		return
	}
	if req.Limit <= 0 {
		req.Limit = s.defaultLimit
	}

	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "another run is already in progress"})
		return
	}
	s.active = true
	sessionID := uuid.NewString()
	status := service.NewStatus()
	s.sessions[sessionID] = status
	s.mu.Unlock()

	go s.runSession(sessionID, req, status)

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID})
}

func (s *Server) runSession(sessionID string, req startRequest, status *service.Status) {
	defer func() {
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
	}()

	s.log.Infow("session started", "session_id", sessionID, "target", req.URL)

	_, path, err := s.runner.Run(context.Background(), service.RunRequest{
		Target:    req.URL,
		Limit:     req.Limit,
		Language:  req.Language,
		KeepFiles: req.KeepFiles,
	}, status)
	if err != nil {
		s.log.Errorw("session failed", "session_id", sessionID, "error", err)
		return
	}
	s.log.Infow("session completed", "session_id", sessionID, "report", path)
}

func (s *Server) handleStatus(c *gin.Context) {
	status, ok := s.session(c.Param("session_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"status": "not_found"})
		return
	}
	c.JSON(http.StatusOK, status.Snapshot())
}

func (s *Server) handleDownload(c *gin.Context) {
	status, ok := s.session(c.Param("session_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "results not found"})
		return
	}

	snap := status.Snapshot()
	if snap.ReportPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "results not ready"})
		return
	}
	if _, err := os.Stat(snap.ReportPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "results file missing"})
		return
	}
	c.FileAttachment(snap.ReportPath, "results.json")
}

func (s *Server) session(id string) (*service.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.sessions[id]
	return status, ok
}
