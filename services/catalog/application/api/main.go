package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/pawmatch/pawmatch/pkg/app"
	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/services/catalog/application/handlers"
	appsvcs "github.com/pawmatch/pawmatch/services/catalog/application/services"
)

// CatalogRoutes registers catalog endpoints on the provided chi router.
// Name sets are public; the queue, filter and custom names need a session.
func CatalogRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Get("/sets", handlers.NewGetSetsHandler(svcs).Execute)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireMember(a.SessionStore, a.Logger))
		r.Get("/queue", handlers.NewGetQueueHandler(svcs).Execute)
		filter := handlers.NewFilterHandler(svcs)
		r.Get("/filter", filter.Get)
		r.Put("/filter", filter.Put)
		r.Post("/names", handlers.NewPostNameHandler(svcs).Execute)
	})
}
