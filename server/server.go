// Package server provides HTTP server management and lifecycle handling for
// the clinical check API: middleware, routes and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/giygas/clinpharm-api/config"
	"github.com/giygas/clinpharm-api/handlers"
	"github.com/giygas/clinpharm-api/health"
	"github.com/giygas/clinpharm-api/interfaces"
	"github.com/giygas/clinpharm-api/logging"
	"github.com/giygas/clinpharm-api/metrics"
	"github.com/giygas/clinpharm-api/validation"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server
type Server struct {
	server        *http.Server
	router        chi.Router
	store         interfaces.ReferenceStore
	handler       interfaces.HTTPHandler
	healthChecker interfaces.HealthChecker
	rateLimiter   *RateLimiter
	config        *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, store interfaces.ReferenceStore) *Server {
	router := chi.NewRouter()
	healthChecker := health.NewHealthChecker(store)

	server := &Server{
		server: &http.Server{
			Handler:           router,
			Addr:              cfg.Address + ":" + cfg.Port,
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    int(cfg.MaxHeaderSize),
		},
		router:        router,
		store:         store,
		handler:       handlers.NewHTTPHandler(store, validation.NewInputValidator(), healthChecker, cfg.MaxRequestBody),
		healthChecker: healthChecker,
		rateLimiter:   NewRateLimiter(rateLimitRate, rateLimitCapacity),
		config:        cfg,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	if s.config.Env == config.EnvProduction {
		s.router.Use(BlockDirectAccessMiddleware) // Before RealIPMiddleware to see the original RemoteAddr
	}
	s.router.Use(RealIPMiddleware)
	s.router.Use(metrics.Metrics)
	s.router.Use(logging.LoggingMiddleware(logging.Logger()))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(s.rateLimiter.Middleware)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Route("/v1", func(r chi.Router) {
		r.Route("/checks", func(r chi.Router) {
			r.Post("/high-risk", s.handler.CheckHighRisk)
			r.Post("/lasa", s.handler.CheckLASA)
			r.Post("/medications", s.handler.ScreenMedications)
			r.Get("/iv-compatibility", s.handler.CheckIVCompatibility)
			r.Get("/pregnancy/{drug}", s.handler.CheckPregnancyRisk)
			r.Post("/antibiotic", s.handler.SuggestAntibiotic)
			r.Post("/labs", s.handler.EvaluateLabPanel)
			r.Post("/dose", s.handler.CheckDose)
		})
		r.Post("/calculators/creatinine-clearance", s.handler.CreatinineClearance)
		r.Get("/drugs/{name}", s.handler.LookupDrug)
		r.Get("/reference/crash-cart", s.handler.ServeCrashCart)
	})

	s.router.Get("/health", s.handler.HealthCheck)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Route not found")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

// Router exposes the configured handler, used by tests
func (s *Server) Router() http.Handler {
	return s.router
}

// RateLimiter returns the per-client limiter for maintenance jobs
func (s *Server) RateLimiter() *RateLimiter {
	return s.rateLimiter
}

// HealthChecker returns the checker backing /health
func (s *Server) HealthChecker() interfaces.HealthChecker {
	return s.healthChecker
}

// Start starts the server and blocks until it stops. A graceful shutdown
// returns nil.
func (s *Server) Start() error {
	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		// If graceful shutdown fails, force close
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}
