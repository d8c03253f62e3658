package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/registro/internal/api"
	"github.com/erazemk/registro/internal/model"
	webembed "github.com/erazemk/registro/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map. Dates are shown in loc.
func FuncMap(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"money":        Money,
		"countryLabel": func(v string) string { return model.Label(model.Countries, v) },
		"agentLabel":   func(v string) string { return model.Label(model.AgentTypes, v) },
		"statusName":   func(v string) string { return model.Label(model.Statuses, v) },
		"date": func(t time.Time) string {
			return t.In(loc).Format("02/01/2006")
		},
		"has": func(values []string, v string) bool {
			return slices.Contains(values, v)
		},
	}
}

// Money formats a whole peso amount the way es-CL does: "$1.500".
func Money(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return sign + "$" + b.String()
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates(loc *time.Location) (*Templates, error) {
	if loc == nil {
		loc = time.Local
	}
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"list.html",
		"edit.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap(loc))
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Kind    model.Kind
	Kinds   []model.Kind
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	Resources []api.Resource
	Templates *Templates
	Location  *time.Location
}

func (s *Server) pageData(r *http.Request, kind model.Kind, title string) PageData {
	q := r.URL.Query()
	return PageData{
		Title:   title,
		Kind:    kind,
		Kinds:   model.Kinds,
		Error:   q.Get(errorParam),
		Success: q.Get(successParam),
	}
}
