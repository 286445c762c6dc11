package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)

	r.Route("/videos", func(r chi.Router) {
		r.Get("/", app.ListVideosHandler)
		r.Post("/", app.RegisterVideoHandler)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.GetVideoHandler)
			r.Delete("/", app.DeleteVideoHandler)
			r.Put("/probe", app.ProbeVideoHandler)

			r.Post("/playback", app.ReportPlaybackHandler)
			r.Post("/seek", app.SeekHandler)

			r.Get("/selection", app.SelectionStateHandler)
			r.Post("/selection/enable", app.EnableSelectionHandler)
			r.Post("/selection/disable", app.DisableSelectionHandler)
			r.Post("/click", app.ClickHandler)

			r.Get("/objects", app.ListObjectsHandler)
			r.Get("/overlays", app.OverlaysHandler)
		})
	})

	r.Route("/objects/{id}", func(r chi.Router) {
		r.Patch("/", app.UpdateObjectHandler)
		r.Delete("/", app.RemoveObjectHandler)
		r.Post("/select", app.SelectObjectHandler)
		r.Post("/deselect", app.DeselectObjectHandler)
	})

	r.Get("/selection/first", app.FirstSelectedHandler)
	r.Get("/timeline", app.TimelineHandler)
	r.Get("/masks/{filename}", app.MaskHandler)

	return r
}
