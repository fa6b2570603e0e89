// Package server exposes the tool registry over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/willfong/mockbank/internal/config"
	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/tools"
)

// Sink persists the current ledger state.
type Sink interface {
	SaveSnapshot(ctx context.Context, snap *models.Snapshot) error
}

// Server routes HTTP requests to tools.
type Server struct {
	cfg      config.ServerConfig
	registry *tools.Registry
	sink     Sink
	log      *zap.Logger
	router   *gin.Engine
}

// New builds the router. sink may be nil, in which case POST /snapshot
// answers 503.
func New(cfg config.ServerConfig, registry *tools.Registry, sink Sink, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{cfg: cfg, registry: registry, sink: sink, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.health)
	r.GET("/tools", s.listTools)
	r.POST("/tools/:name", s.callTool)
	r.GET("/statistics", s.statistics)
	r.POST("/snapshot", s.snapshot)

	s.router = r
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("tool server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	<-errCh
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": s.registry.Definitions()})
}

func (s *Server) callTool(c *gin.Context) {
	name := c.Param("name")
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := s.registry.Call(name, body)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, tools.ErrUnknownTool):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, tools.ErrBadArguments):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.log.Error("tool call failed", zap.String("tool", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *Server) statistics(c *gin.Context) {
	c.JSON(http.StatusOK, s.registry.Engine().Statistics())
}

func (s *Server) snapshot(c *gin.Context) {
	if s.sink == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot sink configured"})
		return
	}
	snap := s.registry.Engine().Snapshot()
	if err := s.sink.SaveSnapshot(c.Request.Context(), snap); err != nil {
		s.log.Error("snapshot failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save snapshot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true, "counts": snap.Counts()})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
