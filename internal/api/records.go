package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/registro/internal/model"
	"github.com/erazemk/registro/internal/query"
	"github.com/erazemk/registro/internal/record"
)

// RecordsHandler handles the CRUD endpoints of one record kind.
type RecordsHandler struct {
	Kind    model.Kind
	Service *record.Service
	msg     messages
}

// NewRecordsHandler returns a handler serving kind through svc.
func NewRecordsHandler(kind model.Kind, svc *record.Service) *RecordsHandler {
	return &RecordsHandler{Kind: kind, Service: svc, msg: messagesFor(kind)}
}

// Routes returns the kind's routes relative to its mount point.
func (h *RecordsHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/create", h.Create)
	r.Put("/edit/{id}", h.Edit)
	r.Delete("/delete/{id}", h.Delete)
	r.Get("/list", h.List)
	r.Put("/date/{id}", h.SetDate)
	return r
}

type setDateRequest struct {
	Date string `json:"date"`
}

// Create handles POST /create.
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req record.Input
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	rec, err := h.Service.Create(r.Context(), req)
	if errors.Is(err, record.ErrValidation) {
		jsonError(w, http.StatusUnauthorized, msgMissingFields)
		return
	}
	if err != nil {
		slog.Error("failed to create record", "kind", h.Kind.Name, "error", err)
		jsonError(w, http.StatusInternalServerError, h.msg.createFailed)
		return
	}

	slog.Info("record created", "kind", h.Kind.Name, "id", rec.ID)
	jsonOK(w, h.msg.created, envelope{h.Kind.Name: rec})
}

// Edit handles PUT /edit/{id}.
func (h *RecordsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	var req record.Input
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	rec, err := h.Service.Edit(r.Context(), id, req)
	switch {
	case errors.Is(err, record.ErrNotFound):
		jsonError(w, http.StatusForbidden, h.msg.editMissing)
		return
	case errors.Is(err, record.ErrInvalidState):
		jsonError(w, http.StatusForbidden, h.msg.editInactive)
		return
	case errors.Is(err, record.ErrValidation):
		jsonError(w, http.StatusUnauthorized, msgMissingFields)
		return
	case err != nil:
		slog.Error("failed to edit record", "kind", h.Kind.Name, "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, h.msg.editFail)
		return
	}

	slog.Info("record edited", "kind", h.Kind.Name, "id", id)
	jsonOK(w, h.msg.edited, envelope{h.Kind.Name: rec})
}

// Delete handles DELETE /delete/{id}.
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	err = h.Service.Delete(r.Context(), id)
	switch {
	case errors.Is(err, record.ErrNotFound):
		jsonError(w, http.StatusForbidden, h.msg.deleteMissing)
		return
	case errors.Is(err, record.ErrInvalidState):
		jsonError(w, http.StatusForbidden, h.msg.deleteInactive)
		return
	case err != nil:
		slog.Error("failed to delete record", "kind", h.Kind.Name, "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, h.msg.deleteFailed)
		return
	}

	slog.Info("record deactivated", "kind", h.Kind.Name, "id", id)
	jsonOK(w, h.msg.deleted, nil)
}

// List handles GET /list.
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := query.Normalize(r.URL.Query(), h.Service.Location())
	switch {
	case errors.Is(err, query.ErrInvalidPage):
		jsonError(w, http.StatusBadRequest, msgInvalidPage)
		return
	case errors.Is(err, query.ErrInvalidLimit):
		jsonError(w, http.StatusBadRequest, msgInvalidLimit)
		return
	}

	res, err := h.Service.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list records", "kind", h.Kind.Name, "error", err)
		jsonError(w, http.StatusInternalServerError, h.msg.listFailed)
		return
	}

	jsonOK(w, "", envelope{
		"items":      res.Records,
		"pagination": res.Pagination,
	})
}

// SetDate handles PUT /date/{id}. It rewrites a record's date for test
// fixtures and is not used by the admin pages.
func (h *RecordsHandler) SetDate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	var req setDateRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	rec, err := h.Service.SetDate(r.Context(), id, req.Date)
	switch {
	case errors.Is(err, record.ErrValidation):
		jsonError(w, http.StatusBadRequest, msgInvalidDate)
		return
	case errors.Is(err, record.ErrNotFound):
		jsonError(w, http.StatusNotFound, msgMissingRecord)
		return
	case err != nil:
		slog.Error("failed to set record date", "kind", h.Kind.Name, "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, msgDateFailed)
		return
	}

	jsonOK(w, msgDateUpdated, envelope{h.Kind.Name: rec})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
