package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the handler's routes. Everything under /v1 except register
// and login requires a bearer token.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(Metrics)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)

			r.Get("/contacts", h.ListContacts)
			r.Post("/contacts", h.AddContact)
			r.Get("/messages/{username}", h.Messages)
			r.Post("/messages/{username}", h.Send)
			r.Post("/messages/{username}/read", h.MarkRead)
			r.Get("/messages/{username}/unread", h.Unread)
		})
	})

	return r
}
