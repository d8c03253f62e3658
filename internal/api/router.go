package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/erazemk/registro/internal/model"
	"github.com/erazemk/registro/internal/record"
)

// Resource binds a record kind to the service that manages it.
type Resource struct {
	Kind    model.Kind
	Service *record.Service
}

// NewRouter creates the API router with every resource mounted under
// /api/<kind>.
func NewRouter(resources ...Resource) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	for _, res := range resources {
		r.Mount("/api/"+res.Kind.Name, NewRecordsHandler(res.Kind, res.Service).Routes())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, "Ruta no encontrada.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusMethodNotAllowed, "Método no permitido.")
	})

	return r
}
