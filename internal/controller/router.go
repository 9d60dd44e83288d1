package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (c Controller) GetMux() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(c.requestIdMw)
	r.Use(c.requestLoggingMw)
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/embed", c.embedPage)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/validate-url", c.validateURL)
		r.Post("/embed-code", c.embedCode)
		r.Post("/overlay-script", c.overlayScript)
		r.Post("/timed-button", c.timedButton)
	})

	r.Get("/ws/player", c.playerWS)

	return r
}
