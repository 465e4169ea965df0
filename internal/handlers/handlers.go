// Package handlers contains the HTTP handlers for every page and form of
// the blog: the public reading surface, authoring, auth, and the staff
// admin area.
package handlers

import (
	"log/slog"
	"net/http"

	"reelblog/internal/config"
	"reelblog/internal/render"
	"reelblog/internal/session"
	"reelblog/internal/store"
)

// Handler bundles the dependencies shared by all HTTP handlers.
type Handler struct {
	log        *slog.Logger
	cfg        *config.Config
	render     *render.Renderer
	sessions   *session.Store
	users      *store.UserStore
	posts      *store.PostStore
	comments   *store.CommentStore
	categories *store.CategoryStore
}

// New constructs a Handler with all its dependencies.
func New(
	log *slog.Logger,
	cfg *config.Config,
	renderer *render.Renderer,
	sessions *session.Store,
	users *store.UserStore,
	posts *store.PostStore,
	comments *store.CommentStore,
	categories *store.CategoryStore,
) *Handler {
	return &Handler{
		log:        log,
		cfg:        cfg,
		render:     renderer,
		sessions:   sessions,
		users:      users,
		posts:      posts,
		comments:   comments,
		categories: categories,
	}
}

// page builds a PageData with the category navigation preloaded. A failed
// category query degrades to an empty nav rather than a broken page.
func (h *Handler) page(title string, data map[string]any) *render.PageData {
	pd := &render.PageData{Title: title, Data: data}
	cats, err := h.categories.List()
	if err != nil {
		h.log.Error("load category nav", "error", err)
		return pd
	}
	pd.Categories = cats
	return pd
}

// notFound renders a plain 404. Draft posts and unknown slugs both land here
// so the response never reveals whether a draft exists.
func (h *Handler) notFound(w http.ResponseWriter) {
	http.Error(w, "404 Not Found", http.StatusNotFound)
}

// serverError logs the error and renders a plain 500.
func (h *Handler) serverError(w http.ResponseWriter, what string, err error) {
	h.log.Error(what, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
