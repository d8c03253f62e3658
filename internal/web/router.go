package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/erazemk/registro/internal/api"
	webembed "github.com/erazemk/registro/web"
)

// NewRouter creates the admin page router with one section per resource.
// Dates are parsed and shown in loc.
func NewRouter(loc *time.Location, resources ...api.Resource) (http.Handler, error) {
	templates, err := LoadTemplates(loc)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Resources: resources,
		Templates: templates,
		Location:  loc,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	if len(resources) > 0 {
		home := "/" + resources[0].Kind.Path
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, home, http.StatusSeeOther)
		})
	}

	for _, res := range resources {
		h := &recordPages{server: s, kind: res.Kind, svc: res.Service}
		r.Route("/"+res.Kind.Path, func(r chi.Router) {
			r.Get("/", h.List)
			r.Post("/", h.Create)
			r.Get("/{id}", h.EditPage)
			r.Post("/{id}", h.Edit)
			r.Post("/{id}/delete", h.Delete)
		})
	}

	return r, nil
}
