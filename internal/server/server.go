// Package server provides the HTTP server and routing for the trading
// journal.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/jstrader/tradejournal/internal/config"
	"github.com/jstrader/tradejournal/internal/di"
	"github.com/jstrader/tradejournal/internal/modules/achievements"
	"github.com/jstrader/tradejournal/internal/modules/journal"
	"github.com/jstrader/tradejournal/internal/modules/profile"
	"github.com/jstrader/tradejournal/internal/modules/stats"
)

// Config holds server configuration.
type Config struct {
	Log       zerolog.Logger
	Config    *config.Config
	Container *di.Container
	Port      int
	DevMode   bool
}

// Server represents the HTTP server.
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	container      *di.Container
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server.
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		cfg:       cfg.Config,
		container: cfg.Container,
	}

	// A typed nil *BackupService must not reach the BackupRunner interface,
	// or the disabled-backups check in the handler would pass a nil receiver.
	var backup BackupRunner
	if cfg.Container.BackupService != nil {
		backup = cfg.Container.BackupService
	}
	s.systemHandlers = NewSystemHandlers(cfg.Log, cfg.Config.DataDir, cfg.Container.JournalDB, backup)

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware.
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	// Liveness probe (no auth, no /api prefix).
	s.router.Get("/health", s.systemHandlers.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// System endpoints stay reachable without a token so monitoring
		// works during identity provider outages.
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", s.systemHandlers.HandleHealth)
			r.Get("/version", s.systemHandlers.HandleVersion)

			r.Group(func(r chi.Router) {
				r.Use(NewAuthenticator(s.container.TokenVerifier, s.log).Middleware)
				r.Post("/backup", s.systemHandlers.HandleTriggerBackup)
			})
		})

		// Everything else requires a verified account.
		r.Group(func(r chi.Router) {
			r.Use(NewAuthenticator(s.container.TokenVerifier, s.log).Middleware)

			journalHandler := journal.NewHandler(s.container.JournalService, s.log)
			r.Route("/journal", journalHandler.RegisterRoutes)

			statsHandler := stats.NewHandler(s.container.JournalService, s.log)
			r.Route("/stats", statsHandler.RegisterRoutes)

			achievementsHandler := achievements.NewHandler(s.container.JournalService, s.log)
			r.Get("/achievements", achievementsHandler.HandleList)

			profileHandler := profile.NewHandler(s.container.ProfileRepo, s.log)
			r.Route("/profile", profileHandler.RegisterRoutes)

			wsHandler := NewWebSocketHandler(s.container.EventBus, s.cfg.AllowedOrigins, s.log)
			r.Get("/ws", wsHandler.ServeHTTP)
		})
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
