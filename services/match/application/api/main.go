package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/pawmatch/pawmatch/pkg/app"
	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/services/match/application/handlers"
	appsvcs "github.com/pawmatch/pawmatch/services/match/application/services"
)

// MatchRoutes registers match endpoints on the provided chi router.
func MatchRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireMember(a.SessionStore, a.Logger))
		r.Get("/matches", handlers.NewGetMatchesHandler(svcs).Execute)
	})
}
