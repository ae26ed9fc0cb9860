// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/gamelibrary/internal/core/developer"
	"github.com/taibuivan/gamelibrary/internal/core/game"
	"github.com/taibuivan/gamelibrary/internal/core/genre"
	"github.com/taibuivan/gamelibrary/internal/platform/config"
	"github.com/taibuivan/gamelibrary/internal/platform/constants"
	"github.com/taibuivan/gamelibrary/internal/platform/metrics"
	"github.com/taibuivan/gamelibrary/internal/platform/middleware"
	"github.com/taibuivan/gamelibrary/internal/platform/telemetry"
	"github.com/taibuivan/gamelibrary/internal/users/account"
	"github.com/taibuivan/gamelibrary/internal/users/auth"
	"github.com/taibuivan/gamelibrary/internal/users/library"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the login route.
	Auth *auth.Handler

	// Users handles registration and account maintenance.
	Users *account.Handler

	// Library handles library membership and reviews.
	Library *library.Handler

	Developers *developer.Handler
	Genres     *genre.Handler
	Games      *game.Handler
}

// Infrastructure holds the cross-cutting components the middleware chain uses.
type Infrastructure struct {
	Verifier    middleware.TokenVerifier
	RateLimiter *middleware.IPRateLimiter
	Metrics     *metrics.Metrics
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, infra Infrastructure, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery())
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(chimw.CleanPath)
	r.Use(infra.RateLimiter.Middleware)
	r.Use(infra.Metrics.Instrument)
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(infra.Verifier))

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", infra.Metrics.Handler())

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Users.Routes())
		api.Mount("/userlibrary", h.Library.Routes())

		api.Route("/developers", h.Developers.RegisterRoutes)
		api.Route("/genres", h.Genres.RegisterRoutes)
		api.Route("/games", h.Games.RegisterRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           telemetry.Handler(r, "gamelibrary"),
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler returns the root handler, including tracing.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
