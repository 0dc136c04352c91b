package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/pawmatch/pawmatch/pkg/app"
	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/services/sync/application/handlers"
	appsvcs "github.com/pawmatch/pawmatch/services/sync/application/services"
)

// SyncRoutes registers sync endpoints on the provided chi router.
func SyncRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireMember(a.SessionStore, a.Logger))
		r.Route("/sync", func(r chi.Router) {
			r.Post("/push", handlers.NewPostPushHandler(svcs).Execute)
			r.Get("/pull", handlers.NewGetPullHandler(svcs).Execute)
		})
	})
}
