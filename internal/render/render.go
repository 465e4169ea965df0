// Package render provides HTML template rendering for the blog. Every page
// template is paired with the base layout from an embedded filesystem.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"reelblog/internal/flash"
	"reelblog/internal/middleware"
	"reelblog/internal/models"
	"reelblog/internal/session"
)

//go:embed templates/*.html
var pageFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title      string            // Page title for <title> tag
	Session    *session.Data     // Current user session (nil if unauthenticated)
	CSRFToken  string            // CSRF token for form hidden fields
	Flashes    []flash.Message   // One-time notification messages
	Categories []models.Category // Category navigation (set on public pages)
	Data       map[string]any    // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
}

// New creates a Renderer by parsing all page templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	funcMap := template.FuncMap{
		// deref safely dereferences a string pointer for use in templates.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		// safeHTML marks pre-rendered, sanitized HTML as safe to emit.
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	entries, err := pageFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		tmplName := name[:len(name)-len(filepath.Ext(name))]
		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			pageFS, "templates/base.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full page. Session, CSRF token, and queued flash messages
// are injected from the request so handlers only supply page data.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = &PageData{}
	}
	data.CSRFToken = middleware.GetCSRFToken(r)
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}
	if data.Flashes == nil {
		data.Flashes = flash.Pop(w, r)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
