// Package api exposes the signup reconciliation engine over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/eventkit/signup-reconciler/internal/config"
)

// Server represents the API server
type Server struct {
	config   config.ServerConfig
	handler  http.Handler
	handlers *Handlers
	server   *http.Server
}

// NewServer creates a new API server
func NewServer(cfg config.ServerConfig, handlers *Handlers) *Server {
	return &Server{
		config:   cfg,
		handler:  SetupRoutes(handlers),
		handlers: handlers,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadTimeout:       time.Minute,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       120 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing
func (s *Server) Handler() http.Handler {
	return s.handler
}
