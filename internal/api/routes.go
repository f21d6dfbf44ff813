package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler, mutationBurst int, mutationRefill time.Duration) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	// Shared bucket for every fact mutation
	mutationLimiter := NewRateLimiter(mutationBurst, mutationRefill)

	r.Get("/health", h.Health)

	r.Route("/states", func(r chi.Router) {
		r.Get("/", h.ListStates)

		r.Route("/{state}", func(r chi.Router) {
			r.Use(VerifyState(h.svc.References()))

			r.Get("/", h.GetState)
			r.Get("/capital", h.Capital)
			r.Get("/nickname", h.Nickname)
			r.Get("/population", h.Population)
			r.Get("/admission", h.Admission)

			r.Route("/funfact", func(r chi.Router) {
				r.Get("/", h.RandomFact)
				r.With(mutationLimiter.Middleware).Post("/", h.AppendFacts)
				r.With(mutationLimiter.Middleware).Patch("/", h.ReplaceFact)
				r.With(mutationLimiter.Middleware).Delete("/", h.DeleteFact)
			})
		})
	})

	return r
}
