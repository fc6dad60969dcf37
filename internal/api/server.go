// Package api serves the classifier and task list over a local HTTP API.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/focusflow/focusflow/internal/config"
	"github.com/focusflow/focusflow/internal/difficulty"
	"github.com/focusflow/focusflow/internal/tasks"
)

// Server is the HTTP API server.
type Server struct {
	config    config.ServerConfig
	router    *chi.Mux
	tasks     *tasks.Service
	advisor   *difficulty.Advisor
	threshold float64
	now       func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithAdvisor enables LLM second opinions on POST /api/v1/classify for
// results below threshold.
func WithAdvisor(a *difficulty.Advisor, threshold float64) Option {
	return func(s *Server) {
		s.advisor = a
		s.threshold = threshold
	}
}

// WithClock overrides the time source used for completions and stats.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func NewServer(cfg config.ServerConfig, svc *tasks.Service, opts ...Option) *Server {
	s := &Server{
		config: cfg,
		tasks:  svc,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/classify", s.handleClassify)
		r.Get("/tiers", s.handleTiers)
		r.Get("/stats", s.handleStats)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.handleListTasks)
			r.Post("/", s.handleCreateTask)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTask)
				r.Post("/complete", s.handleCompleteTask)
			})
		})
	})

	s.router = r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("api server listening", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("api server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// loggingMiddleware logs each request with slog.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
