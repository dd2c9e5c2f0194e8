package app

import (
	"net/http"
	"time"

	middle "pulsecheck/internals/middleware"
	"pulsecheck/internals/modules/history"
	"pulsecheck/internals/modules/schedule"
	"pulsecheck/internals/modules/stats"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(c *Container) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middle.Logger(c.Logger))
	r.Use(middle.Metrics())
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Mount("/history", history.Routes(c.historyHandler))
		v1.Mount("/stats", stats.Routes(c.statsHandler))
		v1.Mount("/schedule", schedule.Routes(c.scheduleHandler))

		v1.Post("/checks", c.scheduleHandler.CheckURLs)
		v1.Get("/urls", c.scheduleHandler.TrackedURLs)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
