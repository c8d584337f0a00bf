package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/kritikayadav/screener-backend/internal/api/handlers"
	custommiddleware "github.com/kritikayadav/screener-backend/internal/api/middleware"
	"github.com/kritikayadav/screener-backend/internal/config"
	"github.com/kritikayadav/screener-backend/internal/viewer"
)

// Services are the collaborators the HTTP layer delegates to.
type Services struct {
	Sessions custommiddleware.SessionDecoder
	Viewers  *viewer.Store
	Stocks   viewer.StockLoader
	Usage    handlers.UsageQuerier
	Features map[string]bool
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Use(custommiddleware.Session(svc.Sessions, cfg.Session.CookieName, log))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.Viewers, svc.Features)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/screener", func(r chi.Router) {
			screenerHandler := handlers.NewScreenerHandler(svc.Viewers, svc.Stocks, svc.Usage, log)
			r.Get("/stocks", screenerHandler.Stocks)
			r.With(custommiddleware.RequireSession).Get("/usage", screenerHandler.Usage)

			r.Post("/viewers", screenerHandler.Mount)
			r.Route("/viewers/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", screenerHandler.View)
				r.Delete("/", screenerHandler.Unmount)
				r.Put("/selection", screenerHandler.Select)
				r.Post("/refresh", screenerHandler.Refresh)
				r.Post("/reload", screenerHandler.Reload)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(custommiddleware.RequireAdmin)
			adminHandler := handlers.NewAdminHandler()
			r.Get("/nav", adminHandler.Nav)
			r.Post("/sidebar", adminHandler.Sidebar)
		})
	})

	return r
}
