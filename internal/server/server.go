// Package server exposes question generation and answer evaluation over
// HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/examprep/internal/examgen"
	"github.com/abhisek/examprep/internal/metrics"
)

// Options configures a Server.
type Options struct {
	// RateLimit is the number of requests per minute allowed per client
	// address. Zero disables limiting.
	RateLimit int

	// Metrics receives request metrics and is served on /metrics. Nil
	// creates a private registry.
	Metrics *metrics.Metrics

	Logger *slog.Logger
}

// Server is the collaborator HTTP service.
type Server struct {
	svc     examgen.Service
	metrics *metrics.Metrics
	limiter *limiter
	log     *slog.Logger
}

// New creates a Server backed by svc.
func New(svc examgen.Service, opts Options) *Server {
	s := &Server{
		svc:     svc,
		metrics: opts.Metrics,
		log:     opts.Logger,
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if opts.RateLimit > 0 {
		s.limiter = newLimiter(opts.RateLimit, time.Minute)
	}
	return s
}

// Handler returns the root handler with middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(allowCORS)
	s.Routes(r)
	return r
}

// Routes registers the service endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.middleware)
		}
		r.Post("/generate-question", s.handleGenerate)
		r.Post("/evaluate-answer", s.handleEvaluate)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
