package http

import (
	"github.com/go-chi/chi/v5"
)

func InitRoutes(r *chi.Mux, c *Controller) *chi.Mux {
	r.Get("/ping", c.Ping)

	r.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", c.CreateOrder)
			r.Get("/", c.GetOrders)
			r.Get("/stats", c.GetStats)
			r.Get("/{id}", c.GetOrder)
			r.Post("/{id}/actions", c.DispatchAction)
		})

		r.Get("/performers/{id}/earnings", c.GetEarnings)
		r.Get("/snapshot", c.GetSnapshot)
		r.Post("/sync", c.ForceSync)
		r.Get("/sync", c.SyncStatus)
	})

	return r
}
