package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/pawmatch/pawmatch/pkg/app"
	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/services/swipe/application/handlers"
	appsvcs "github.com/pawmatch/pawmatch/services/swipe/application/services"
)

// SwipeRoutes registers swipe endpoints on the provided chi router.
func SwipeRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	likes := handlers.NewGetLikesHandler(svcs)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireMember(a.SessionStore, a.Logger))
		r.Route("/swipes", func(r chi.Router) {
			r.Post("/", handlers.NewPostSwipeHandler(svcs).Execute)
			r.Post("/undo", handlers.NewPostUndoHandler(svcs).Execute)
			r.Get("/counts", likes.Counts)
		})
		r.Get("/likes", likes.Execute)
	})
}
