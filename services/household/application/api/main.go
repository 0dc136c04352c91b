package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/pawmatch/pawmatch/pkg/app"
	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/services/household/application/handlers"
	appsvcs "github.com/pawmatch/pawmatch/services/household/application/services"
)

// HouseholdRoutes registers household endpoints on the provided chi router.
// Create and join are unauthenticated (they establish the session); reads
// require a member session.
func HouseholdRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/households", func(r chi.Router) {
			r.Post("/", handlers.NewPostHouseholdHandler(svcs, a.SessionStore, a.Logger).Execute)
			r.Post("/join", handlers.NewPostJoinHandler(svcs, a.SessionStore, a.Logger).Execute)
		})
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireMember(a.SessionStore, a.Logger))
		r.Get("/household", handlers.NewGetHouseholdHandler(svcs).Execute)
	})
}
