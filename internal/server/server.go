// Package server exposes the query pipeline over HTTP as a small JSON
// API.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"log/slog"

	"github.com/mathflow-labs/mathflow/internal/solver"
)

// Server hosts the solve API.
type Server struct {
	solver  *solver.Solver
	port    int
	timeout time.Duration
	logger  *slog.Logger
}

// Config holds configuration for the API server.
type Config struct {
	Solver *solver.Solver
	Port   int
	// Timeout bounds each engine invocation; zero means 10s.
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewServer creates a server instance.
func NewServer(cfg Config) *Server {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		solver:  cfg.Solver,
		port:    cfg.Port,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// Router builds the chi mux with the full middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewMux()
	r.Use(
		requestID,
		s.logRequests,
		middleware.Recoverer,
	)
	r.Get("/healthz", s.handleHealth)
	r.Post("/api/v1/solve", s.handleSolve)
	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting API server", "addr", addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
