package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/metrics", promhttp.Handler().(http.HandlerFunc))
	r.Get("/api/health", s.handleHealthCheck)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Get("/me", s.handleMe)
	})

	// Scraping needs no account; everything that touches stored listings
	// does.
	r.Post("/api/scrape-url", s.handleScrapeURL)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/open-houses", s.handleListOpenHouses)
		r.Post("/open-houses", s.handleCreateOpenHouse)
		r.Get("/open-houses/{id}", s.handleGetOpenHouse)
		r.Patch("/open-houses/{id}", s.handleUpdateOpenHouse)
		r.Delete("/open-houses/{id}", s.handleDeleteOpenHouse)

		r.Get("/stats", s.handleStats)

		r.Post("/parse-listing", s.handleParseListing)
		r.Post("/ocr-parse", s.handleOCRParse)
	})

	return r
}
