package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/internal/query"
	"github.com/restgen/restgen/internal/schema"
	"github.com/restgen/restgen/internal/service"
	"github.com/restgen/restgen/models"
)

// Route operations a Resource descriptor may allow. QUERY is served as
// POST {Prefix}/_query; the rest map to their HTTP methods.
const (
	MethodQuery  = "QUERY"
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
)

// statusCodeMapping fixes the success status per operation. The controller
// never deviates from it.
var statusCodeMapping = map[string]int{
	"CREATE": http.StatusCreated,
	"READ":   http.StatusOK,
	"QUERY":  http.StatusOK,
	"UPDATE": http.StatusOK,
	"DELETE": http.StatusNoContent,
}

// Resource describes one REST resource: which endpoints exist, which service
// backs them, how bodies are validated, and whether callers must
// authenticate. Descriptors are built once at startup and shared read-only
// by all generated handlers; they must not be mutated afterwards.
type Resource struct {
	// Name is the resource name, used in log fields, auth messages, and by
	// the generic service as the storage key.
	Name string

	// Prefix is the URL prefix endpoints are mounted under,
	// e.g. "/api/v1/articles".
	Prefix string

	// Methods lists the allowed operations (MethodQuery, MethodGet, ...).
	// No endpoint is registered for an operation absent from this list.
	Methods []string

	// Service handles the data operations behind the generated endpoints.
	Service service.ResourceService

	// CreateSchema and UpdateSchema optionally validate POST and PUT bodies.
	// A nil schema skips validation for that operation.
	CreateSchema *schema.Schema
	UpdateSchema *schema.Schema

	// Pipeline holds the hooks the service runs around mutating operations.
	Pipeline service.Pipeline

	// AllowAnonymous disables the authentication gate for every endpoint of
	// this resource.
	AllowAnonymous bool
}

func (res Resource) allows(method string) bool {
	for _, m := range res.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// RegisterResource registers the endpoints of one descriptor on router.
// It is a one-time startup side effect; call it exactly once per descriptor.
//
//	POST   {Prefix}/_query → Service.Filter   → 200
//	GET    {Prefix}/{id}   → Service.Get      → 200
//	POST   {Prefix}        → Service.Create   → 201
//	PUT    {Prefix}/{id}   → Service.Update   → 200
//	DELETE {Prefix}/{id}   → Service.Delete   → 204
func (h *Handler) RegisterResource(router chi.Router, res Resource) {
	h.logger.Info().
		Str("resource", res.Name).
		Str("prefix", res.Prefix).
		Strs("methods", res.Methods).
		Bool("anonymous", res.AllowAnonymous).
		Msg("resource endpoints registered")

	if res.allows(MethodQuery) {
		router.Post(res.Prefix+"/_query", h.queryResource(res))
	}
	if res.allows(MethodGet) {
		router.Get(res.Prefix+"/{resourceID}", h.readResource(res))
	}
	if res.allows(MethodPost) {
		router.Post(res.Prefix, h.createResource(res))
	}
	if res.allows(MethodPut) {
		router.Put(res.Prefix+"/{resourceID}", h.updateResource(res))
	}
	if res.allows(MethodDelete) {
		router.Delete(res.Prefix+"/{resourceID}", h.deleteResource(res))
	}
}

func (h *Handler) queryResource(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !res.AllowAnonymous {
			if _, err := h.authenticate(r, res.Name); err != nil {
				writeError(w, r, err)
				return
			}
		}

		spec, err := query.Parse(r.Body)
		if err != nil {
			writeError(w, r, err)
			return
		}

		documents, err := res.Service.Filter(r.Context(), spec)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if documents == nil {
			documents = []models.Document{}
		}

		writeJSON(w, documents, statusCodeMapping["QUERY"])
	}
}

func (h *Handler) readResource(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !res.AllowAnonymous {
			if _, err := h.authenticate(r, res.Name); err != nil {
				writeError(w, r, err)
				return
			}
		}

		document, err := res.Service.Get(r.Context(), chi.URLParam(r, "resourceID"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, document, statusCodeMapping["READ"])
	}
}

func (h *Handler) createResource(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user models.User
		if !res.AllowAnonymous {
			var err error
			if user, err = h.authenticate(r, res.Name); err != nil {
				writeError(w, r, err)
				return
			}
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, r, err)
			return
		}

		document, err := res.Service.Create(r.Context(), user, body, res.CreateSchema, res.Pipeline)
		if err != nil {
			writeError(w, r, err)
			return
		}

		logger.FromRequest(r).Debug().
			Str("resource", res.Name).
			Str("id", document.ID()).
			Msg("document created")

		writeJSON(w, document, statusCodeMapping["CREATE"])
	}
}

func (h *Handler) updateResource(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user models.User
		if !res.AllowAnonymous {
			var err error
			if user, err = h.authenticate(r, res.Name); err != nil {
				writeError(w, r, err)
				return
			}
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resourceID := chi.URLParam(r, "resourceID")
		document, err := res.Service.Update(r.Context(), user, resourceID, body, res.UpdateSchema, res.Pipeline)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, document, statusCodeMapping["UPDATE"])
	}
}

func (h *Handler) deleteResource(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !res.AllowAnonymous {
			if _, err := h.authenticate(r, res.Name); err != nil {
				writeError(w, r, err)
				return
			}
		}

		resourceID := chi.URLParam(r, "resourceID")
		if err := res.Service.Delete(r.Context(), resourceID, res.Pipeline); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(statusCodeMapping["DELETE"])
	}
}
