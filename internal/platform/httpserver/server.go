// Package httpserver wraps net/http server construction so timeouts stay
// consistent and main only deals with lifecycle.
package httpserver

import (
	"context"
	"net/http"
	"time"
)

// New returns an *http.Server with sane timeouts for an operator console.
func New(addr string, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Server is a thin wrapper over http.Server.
type Server struct {
	srv *http.Server
}

// ListenAndServe starts serving; it blocks until shutdown or failure.
func (s *Server) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
