package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/glowmart/storefront/internal/app/config"
	"github.com/glowmart/storefront/internal/platform/logger"
)

// Server wraps the storefront HTTP API with start/stop lifecycle management.
type Server struct {
	httpServer *http.Server
	log        logger.Logger
	port       string
}

func NewServer(log logger.Logger, cfg config.HTTPServerConfig, mux http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      mux,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		log:  log,
		port: cfg.Port,
	}
}

func (s *Server) Start() error {
	s.log.Infof("HTTP server is starting on port %s", s.port)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed to serve: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("HTTP server is stopping gracefully")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}
	return nil
}
