// Package server is the HTTP preview server behind `lintrans serve`.
//
// Routes:
//
//	GET /healthz                 liveness check
//	GET /version                 build information
//	GET /api/v1/transform        original and transformed vertices as JSON
//	GET /api/v1/steps            storyboard JSON
//	GET /api/v1/scene.{format}   a rendered artifact (png, gif, svg, json, storyboard)
//
// Scene endpoints read their inputs from the query string; see [ParseQuery].
// Rendered artifacts go through the pipeline cache, so repeated requests for
// the same scene are served without rendering.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/lintrans/pkg/cache"
	"github.com/matzehuels/lintrans/pkg/pipeline"
)

// KeyPrefix scopes the cache keys written by the server, so previews never
// collide with CLI renders sharing the same backend.
const KeyPrefix = "api/v1:"

// Timeouts applied by ListenAndServe.
const (
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 2 * time.Minute // GIF renders take a while
	ShutdownTimeout = 10 * time.Second
)

// Server serves scene previews.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New returns a server that renders through a copy of runner whose cache
// keys carry [KeyPrefix]. A nil logger uses the runner's logger.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	scoped := *runner
	scoped.Keyer = cache.NewScopedKeyer(runner.Keyer, KeyPrefix)
	s := &Server{runner: &scoped, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(serverHeader)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/transform", s.handleTransform)
		r.Get("/steps", s.handleSteps)
		r.Get("/scene.{format}", s.handleScene)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
