package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RouterDeps wires the handler and access logger into the router.
type RouterDeps struct {
	Handler *Handler
	Log     zerolog.Logger
}

// NewRouter builds the read-API router.
func NewRouter(d RouterDeps) http.Handler {
	if d.Handler == nil {
		panic("rest.NewRouter: nil handler")
	}

	r := chi.NewRouter()

	// Request ID + structured access log
	r.Use(RequestID)
	r.Use(HTTPLogger(d.Log))

	// Panic recovery
	r.Use(middleware.Recoverer)

	r.Get("/healthz", d.Handler.Healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/events", d.Handler.Events)
		r.Get("/categories", d.Handler.Categories)
		r.Get("/venues", d.Handler.Venues)
	})

	return r
}
