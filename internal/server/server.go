// Package server provides the HTTP server for the boorubot application.
// It handles routing, middleware configuration, and server lifecycle
// management.
//
// Initialization follows a fixed dependency order: database, repositories,
// services, handlers, routes. The server shuts down gracefully on SIGINT and
// SIGTERM, draining in-flight requests before closing the settings store.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/dvornik/boorubot/internal/config"
	"github.com/dvornik/boorubot/internal/database"
	"github.com/dvornik/boorubot/internal/handlers"
	"github.com/dvornik/boorubot/internal/repository"
	"github.com/dvornik/boorubot/internal/service"
	"github.com/dvornik/boorubot/migrations"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// SearchHandler manages search and result-navigation endpoints
	SearchHandler *handlers.SearchHandler

	// SettingsHandler manages user preference endpoints
	SettingsHandler *handlers.SettingsHandler
}

// Server represents the boorubot API server. It encapsulates all server
// components and handles lifecycle management: initialization, startup and
// graceful shutdown.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides settings-store access
	Db *database.Pool

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// httpServer is the underlying HTTP server
	httpServer *http.Server

	// sessionRepo is kept for shutdown-time reporting
	sessionRepo repository.SessionRepository
}

// NewServer creates a new server instance with all required components and
// returns it ready to start.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	if err := s.setupDatabase(); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	s.setupHandlers()
	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  2 * cfg.Server.ReadTimeout,
	}

	return s, nil
}

// setupDatabase connects the settings store and brings its schema up to
// date.
func (s *Server) setupDatabase() error {
	db, err := database.Connect(s.Config)
	if err != nil {
		return err
	}
	s.Db = db

	migrator := migrations.NewMigrator(db)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// setupHandlers builds the repository, service and handler graph.
func (s *Server) setupHandlers() {
	booruRepo := repository.NewBooruRepository(&s.Config.Booru)
	sessionRepo := repository.NewSessionRepository()
	settingsRepo := repository.NewSettingsRepository(s.Db)

	s.sessionRepo = sessionRepo

	booruService := service.NewBooruService(
		booruRepo,
		sessionRepo,
		settingsRepo,
		s.Config.Booru.SearchLimit,
	)
	userService := service.NewUserService(settingsRepo, sessionRepo)

	s.Handlers = &Handlers{
		SearchHandler:   handlers.NewSearchHandler(booruService),
		SettingsHandler: handlers.NewSettingsHandler(userService),
	}
}

// Start starts the HTTP server and blocks until a server error occurs or a
// shutdown signal is received.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, draining in-flight requests
// before closing the settings store. Search sessions are process memory and
// are simply dropped.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")

	if s.sessionRepo != nil {
		if active := s.sessionRepo.ActiveUserCount(); active > 0 {
			log.Info().Int("active_sessions", active).Msg("Dropping in-memory search sessions")
		}
	}

	s.Db.Close()
	log.Info().Msg("Database connection closed")

	return nil
}
