package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/registro/internal/model"
	"github.com/erazemk/registro/internal/query"
	"github.com/erazemk/registro/internal/record"
)

// Query parameters carrying the outcome of a form submission back to the
// list page after a redirect.
const (
	errorParam   = "error"
	successParam = "ok"
)

// recordPages serves the admin pages of one record kind.
type recordPages struct {
	server *Server
	kind   model.Kind
	svc    *record.Service
}

// listData is passed to list.html.
type listData struct {
	PageData
	Records    []model.Record
	Pagination record.Pagination
	Page       int64
	PrevURL    string
	NextURL    string
	Form       url.Values
	Countries  []model.Option
	AgentTypes []model.Option
	Statuses   []model.Option
}

// List handles GET /{path}.
func (p *recordPages) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	data := listData{
		PageData:   p.server.pageData(r, p.kind, capitalize(p.kind.Plural)),
		Records:    []model.Record{},
		Form:       values,
		Countries:  model.Countries,
		AgentTypes: model.AgentTypes,
		Statuses:   model.Statuses,
	}

	filter, err := query.Normalize(values, p.server.Location)
	if err != nil {
		data.Error = "La página y el límite deben ser números válidos."
		p.server.Templates.Render(w, http.StatusBadRequest, "list.html", data)
		return
	}

	res, err := p.svc.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list records", "kind", p.kind.Name, "error", err)
		data.Error = fmt.Sprintf("Error del servidor al listar los %s.", p.kind.Plural)
		p.server.Templates.Render(w, http.StatusInternalServerError, "list.html", data)
		return
	}

	data.Records = res.Records
	data.Pagination = res.Pagination
	data.Page = int64(filter.Page.Number)
	if data.Page > 1 {
		data.PrevURL = p.pageURL(values, data.Page-1)
	}
	if data.Page < res.Pagination.TotalPages {
		data.NextURL = p.pageURL(values, data.Page+1)
	}

	p.server.Templates.Render(w, http.StatusOK, "list.html", data)
}

// Create handles POST /{path}.
func (p *recordPages) Create(w http.ResponseWriter, r *http.Request) {
	rec, err := p.svc.Create(r.Context(), formInput(r))
	switch {
	case errors.Is(err, record.ErrValidation):
		p.redirect(w, r, p.listURL(), errorParam, "Todos los campos son obligatorios.")
		return
	case err != nil:
		slog.Error("failed to create record", "kind", p.kind.Name, "error", err)
		p.redirect(w, r, p.listURL(), errorParam, fmt.Sprintf("Error del servidor al crear el %s.", p.kind.Noun))
		return
	}

	slog.Info("record created", "kind", p.kind.Name, "id", rec.ID)
	p.redirect(w, r, p.listURL(), successParam, fmt.Sprintf("%s creado con éxito.", p.kind.Title))
}

// editData is passed to edit.html.
type editData struct {
	PageData
	Record     *model.Record
	Countries  []model.Option
	AgentTypes []model.Option
}

// EditPage handles GET /{path}/{id}.
func (p *recordPages) EditPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := p.svc.Get(r.Context(), id)
	if errors.Is(err, record.ErrNotFound) {
		http.Error(w, fmt.Sprintf("%s no encontrado", p.kind.Title), http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to get record", "kind", p.kind.Name, "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	p.server.Templates.Render(w, http.StatusOK, "edit.html", editData{
		PageData:   p.server.pageData(r, p.kind, fmt.Sprintf("%s %s", rec.Name, rec.Surname)),
		Record:     rec,
		Countries:  model.Countries,
		AgentTypes: model.AgentTypes,
	})
}

// Edit handles POST /{path}/{id}.
func (p *recordPages) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	back := fmt.Sprintf("%s/%d", p.listURL(), id)

	_, err = p.svc.Edit(r.Context(), id, formInput(r))
	switch {
	case errors.Is(err, record.ErrNotFound):
		http.Error(w, fmt.Sprintf("%s no encontrado", p.kind.Title), http.StatusNotFound)
		return
	case errors.Is(err, record.ErrInvalidState):
		p.redirect(w, r, back, errorParam, fmt.Sprintf("No se pueden editar %s inactivos.", p.kind.Plural))
		return
	case errors.Is(err, record.ErrValidation):
		p.redirect(w, r, back, errorParam, "Todos los campos son obligatorios.")
		return
	case err != nil:
		slog.Error("failed to edit record", "kind", p.kind.Name, "id", id, "error", err)
		p.redirect(w, r, back, errorParam, fmt.Sprintf("Error en el servidor al editar un %s.", p.kind.Noun))
		return
	}

	slog.Info("record edited", "kind", p.kind.Name, "id", id)
	p.redirect(w, r, p.listURL(), successParam, fmt.Sprintf("%s actualizado con éxito.", p.kind.Title))
}

// Delete handles POST /{path}/{id}/delete.
func (p *recordPages) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	err = p.svc.Delete(r.Context(), id)
	switch {
	case errors.Is(err, record.ErrNotFound):
		http.Error(w, fmt.Sprintf("%s no encontrado", p.kind.Title), http.StatusNotFound)
		return
	case errors.Is(err, record.ErrInvalidState):
		p.redirect(w, r, p.listURL(), errorParam, fmt.Sprintf("El %s no se encuentra activo.", p.kind.Noun))
		return
	case err != nil:
		slog.Error("failed to delete record", "kind", p.kind.Name, "id", id, "error", err)
		p.redirect(w, r, p.listURL(), errorParam, fmt.Sprintf("Error del servidor al eliminar un %s", p.kind.Noun))
		return
	}

	slog.Info("record deactivated", "kind", p.kind.Name, "id", id)
	p.redirect(w, r, p.listURL(), successParam, fmt.Sprintf("%s eliminado con éxito.", p.kind.Title))
}

func (p *recordPages) listURL() string {
	return "/" + p.kind.Path
}

// pageURL returns the list URL for page n keeping the current filters.
func (p *recordPages) pageURL(values url.Values, n int64) string {
	q := url.Values{}
	for k, v := range values {
		if k == errorParam || k == successParam {
			continue
		}
		q[k] = v
	}
	q.Set("page", strconv.FormatInt(n, 10))
	return p.listURL() + "?" + q.Encode()
}

func (p *recordPages) redirect(w http.ResponseWriter, r *http.Request, target, param, message string) {
	http.Redirect(w, r, target+"?"+url.Values{param: {message}}.Encode(), http.StatusSeeOther)
}

// formInput reads a record from a submitted form. Amounts may be typed with
// thousands separators and a currency sign.
func formInput(r *http.Request) record.Input {
	amount, _ := query.ParseAmount(r.FormValue("amount"))
	return record.Input{
		Name:      r.FormValue("name"),
		Surname:   r.FormValue("surname"),
		Amount:    amount,
		Country:   r.FormValue("country"),
		AgentType: r.FormValue("agentType"),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
