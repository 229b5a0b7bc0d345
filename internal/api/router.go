package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/api/handlers"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/api/middleware"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/auth"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/config"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/pretranslate"
)

func NewRouter(database *db.Database, jwtService *auth.JWTService, cfg *config.Config, service *pretranslate.Service) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Handlers
	authHandler := handlers.NewAuthHandler(database, jwtService)
	settingsHandler := handlers.NewSettingsHandler(database, service.Usage())
	bulkHandler := handlers.NewBulkHandler(database, service)
	translationsHandler := handlers.NewTranslationsHandler(database)

	// A bulk run can fan out to paid provider APIs, one call per selected
	// string; keep the endpoint behind a tight per-IP limit.
	bulkLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB

		// Health check (public)
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Auth (public)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			// Auth
			r.Get("/auth/me", authHandler.Me)

			// Per-user provider settings and usage counters
			r.Get("/settings", settingsHandler.GetSettings)
			r.Put("/settings", settingsHandler.UpdateSettings)
			r.Get("/settings/usage", settingsHandler.GetUsage)

			// Bulk pretranslation
			r.Get("/sets/{setID}/bulk-actions", bulkHandler.Actions)
			r.With(bulkLimiter.Handler).Post("/sets/{setID}/bulk-pretranslate", bulkHandler.Pretranslate)

			// Review support
			r.Get("/sets/{setID}/translations", translationsHandler.List)
		})
	})

	return r
}
