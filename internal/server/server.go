// Package server exposes the two relay endpoints over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/olivepayment/pos-intake/internal/config"
	"github.com/olivepayment/pos-intake/internal/forms"
	"github.com/olivepayment/pos-intake/internal/relay"
)

// shutdownTimeout bounds how long in-flight submissions may finish after a
// termination signal.
const shutdownTimeout = 10 * time.Second

// Server wires the relay service into a gin router.
type Server struct {
	cfg    *config.Config
	relay  *relay.Service
	logger *slog.Logger
	engine *gin.Engine
}

// New creates the HTTP server and registers its routes.
func New(cfg *config.Config, relaySvc *relay.Service, logger *slog.Logger) *Server {
	if !cfg.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:    cfg,
		relay:  relaySvc,
		logger: logger,
		engine: engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.POST("/agentForms", s.handleSubmission(forms.Agent()))
		api.POST("/merchantForms", s.handleSubmission(forms.Merchant()))
	}
	s.engine.GET("/healthz", s.handleHealth)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    s.cfg.ServerName,
		"version": s.cfg.Version,
	})
}

// Handler returns the underlying HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}
