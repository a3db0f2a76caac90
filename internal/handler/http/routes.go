package http

import (
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router: panic recovery, trace-id and access-logging
// middleware, the token API, and one endpoint set per resource descriptor.
// Registration happens exactly once at startup; the returned router is
// immutable afterwards.
func (h *Handler) Init(resources ...Resource) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// token routes are always anonymous
	router.Post(fmt.Sprintf("/api/%s/tokens", h.apiVersion), h.createToken)
	router.Post(fmt.Sprintf("/api/%s/tokens/refresh", h.apiVersion), h.refreshToken)

	for _, resource := range resources {
		h.RegisterResource(router, resource)
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
