// Package server provides the HTTP server for the boorubot application.
// It handles routing, middleware configuration, and server lifecycle
// management.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/dvornik/boorubot/internal/constants"
	"github.com/dvornik/boorubot/internal/middleware"
	"github.com/dvornik/boorubot/internal/utils"
)

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
// - Health check and version endpoints
// - Tag lookup and direct post access
// - Per-user search, result navigation and preference management
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	// Base middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	if s.Config.Logging.RequestLog {
		r.Use(middleware.Logging())
	}

	// Health check and version routes
	r.Group(func(r chi.Router) {
		r.Get(constants.HealthPath, func(w http.ResponseWriter, r *http.Request) {
			if err := s.Db.HealthCheck(r.Context()); err != nil {
				log.Error().Err(err).Msg("Health check failed")
				utils.Error(w, http.StatusServiceUnavailable, constants.CodeServiceUnavailable, "Service is not healthy")
				return
			}

			utils.JSON(w, http.StatusOK, map[string]string{
				"status":  "healthy",
				"version": s.Config.App.Version,
			})
		})

		r.Get(constants.VersionPath, func(w http.ResponseWriter, r *http.Request) {
			utils.JSON(w, http.StatusOK, map[string]string{
				"version":     s.Config.App.Version,
				"environment": s.Config.App.Environment,
			})
		})
	})

	// API routes
	r.Route(constants.APIBasePath, func(r chi.Router) {
		// Tag lookup
		r.Get("/tags", s.Handlers.SearchHandler.SearchTags)

		// Direct post access
		r.Route("/posts", func(r chi.Router) {
			r.Get("/deleted", s.Handlers.SearchHandler.GetDeletedImages)
			r.Get("/{postID}", s.Handlers.SearchHandler.GetPost)
			r.Get("/{postID}/comments", s.Handlers.SearchHandler.GetComments)
		})

		// Per-user routes
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/", s.Handlers.SettingsHandler.GetUser)
			r.Delete("/", s.Handlers.SettingsHandler.DeleteUser)

			// Search and result navigation
			r.Post("/search", s.Handlers.SearchHandler.Search)
			r.Post("/search/random", s.Handlers.SearchHandler.RandomSearch)

			r.Route("/results", func(r chi.Router) {
				r.Get("/", s.Handlers.SearchHandler.GetResults)
				r.Delete("/", s.Handlers.SearchHandler.ClearResults)
				r.Post("/navigate", s.Handlers.SearchHandler.Navigate)
				r.Get("/{index}", s.Handlers.SearchHandler.SelectResult)
			})

			// Preferences
			r.Route("/settings", func(r chi.Router) {
				r.Get("/", s.Handlers.SettingsHandler.GetSettings)
				r.Post("/reset", s.Handlers.SettingsHandler.ResetSettings)

				r.Route("/auto-tags", func(r chi.Router) {
					r.Get("/", s.Handlers.SettingsHandler.ListAutoTags)
					r.Post("/", s.Handlers.SettingsHandler.AddAutoTag)
					r.Delete("/", s.Handlers.SettingsHandler.ClearAutoTags)
					r.Delete("/{index}", s.Handlers.SettingsHandler.RemoveAutoTag)
				})

				r.Route("/rules", func(r chi.Router) {
					r.Get("/", s.Handlers.SettingsHandler.ListRules)
					r.Delete("/", s.Handlers.SettingsHandler.ClearRules)
					r.Put("/{name}", s.Handlers.SettingsHandler.SetRule)
					r.Post("/{name}/toggle", s.Handlers.SettingsHandler.ToggleRule)
				})
			})
		})
	})

	s.router = r
}

// GetRouter returns the configured router. Primarily used for testing.
func (s *Server) GetRouter() chi.Router {
	return s.router
}
