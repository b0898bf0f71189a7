package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mrwolf/burnout-server/internal/config"
	"github.com/mrwolf/burnout-server/internal/scheduler"
	"github.com/mrwolf/burnout-server/internal/tracker"
)

func NewRouter(cfg *config.Config, svc *tracker.Service, checks []*scheduler.Check) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)

	handlers := NewHandlers(svc, checks)
	submitLimiter := NewRateLimiter(submitLimit(cfg))

	r.Get("/health", handlers.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg))
		r.Use(JSONContentType)

		r.Route("/moods", func(r chi.Router) {
			r.With(RateLimitMiddleware(submitLimiter)).Post("/", handlers.SubmitMood)
			r.Get("/", handlers.History)
			r.Delete("/", handlers.ClearHistory)
			r.Get("/stream", handlers.StreamHistory)
			r.Get("/trend", handlers.Trend)
		})

		r.Get("/escalation", handlers.Escalation)
		r.Post("/escalation/ack", handlers.AcknowledgeHandoff)

		r.Get("/handoff/contacts", handlers.Contacts)
		r.Post("/handoff/compose", handlers.Compose)
	})

	return r
}

// submitLimit falls back to 30 a minute when the config leaves it unset
func submitLimit(cfg *config.Config) (int, time.Duration) {
	limit, window := cfg.SubmitLimit, cfg.SubmitWindow
	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	return limit, window
}
