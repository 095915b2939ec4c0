package main

import (
	"log/slog"
	"net/http"

	"travelAgency/internal/http-server/middleware/mwlogger"
	"travelAgency/internal/http-server/middleware/mwmetrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type routes struct {
	Checkout http.HandlerFunc
	Booking  http.HandlerFunc
	Webhook  http.HandlerFunc
	Health   http.HandlerFunc
	Metrics  http.Handler
}

// Browser routes accept any origin. Pre-flights pass through so the
// checkout handler answers them itself.
var browserCORS = cors.Options{
	AllowedOrigins:     []string{"*"},
	AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowedHeaders:     []string{"*"},
	MaxAge:             300,
	OptionsPassthrough: true,
}

func newRouter(log *slog.Logger, srvMetrics *mwmetrics.ServerMetrics, h routes) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mwlogger.New(log))
	router.Use(mwmetrics.New(srvMetrics))
	router.Use(middleware.Recoverer)

	router.Group(func(r chi.Router) {
		r.Use(cors.Handler(browserCORS))

		r.Post("/checkout", h.Checkout)
		r.Options("/checkout", h.Checkout)

		r.Get("/bookings/{id}", h.Booking)
	})

	router.Post("/webhooks/stripe", h.Webhook)

	router.Get("/healthz", h.Health)
	router.Handle("/metrics", h.Metrics)

	return router
}
