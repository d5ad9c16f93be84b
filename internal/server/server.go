// Package server exposes FRIDAY over HTTP and WebSocket.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/phuslu/log"

	"friday/internal/recorder"
)

// Processor answers one message and names the rule that handled it.
type Processor interface {
	Dispatch(ctx context.Context, text string) (reply, rule string)
}

// Config holds the listener settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ChartDir     string
}

// Server manages the HTTP server and routes.
type Server struct {
	cfg     Config
	proc    Processor
	journal recorder.Recorder
	router  *http.ServeMux
	server  *http.Server
}

// New creates the HTTP server. journal may be nil.
func New(cfg Config, proc Processor, journal recorder.Recorder) *Server {
	if journal == nil {
		journal = recorder.NewNoopRecorder()
	}
	s := &Server{cfg: cfg, proc: proc, journal: journal}
	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	log.Info().Str("address", s.cfg.Addr).Msg("HTTP server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("shutting down HTTP server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("HTTP server stopped")
	return nil
}
