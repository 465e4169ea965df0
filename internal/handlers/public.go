package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"reelblog/internal/flash"
	"reelblog/internal/markdown"
	"reelblog/internal/middleware"
	"reelblog/internal/models"
	"reelblog/internal/pagination"
	"reelblog/internal/policy"
	"reelblog/internal/sanitize"
)

// Home renders the landing page: the hero post, a paginated grid of
// published posts (hero excluded), and the category navigation. With a
// ?category= filter the hero is omitted and the grid shows only that
// category's posts.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	categorySlug := r.URL.Query().Get("category")
	rawPage := r.URL.Query().Get("page")

	data := map[string]any{}

	if categorySlug != "" {
		total, err := h.posts.CountPublishedByCategory(categorySlug)
		if err != nil {
			h.serverError(w, "count posts by category", err)
			return
		}
		page := pagination.New(rawPage, total)
		posts, err := h.posts.ListPublishedByCategory(categorySlug, page.PerPage, page.Offset)
		if err != nil {
			h.serverError(w, "list posts by category", err)
			return
		}
		data["Posts"] = posts
		data["Page"] = page
		h.render.Page(w, r, "home", h.page("Home", data))
		return
	}

	hero, err := h.posts.FindFeatured()
	if err != nil {
		h.serverError(w, "find featured post", err)
		return
	}

	var excludeID *uuid.UUID
	if hero != nil {
		excludeID = &hero.ID
	}

	total, err := h.posts.CountPublished(excludeID)
	if err != nil {
		h.serverError(w, "count published posts", err)
		return
	}
	page := pagination.New(rawPage, total)
	posts, err := h.posts.ListPublished(excludeID, page.PerPage, page.Offset)
	if err != nil {
		h.serverError(w, "list published posts", err)
		return
	}

	data["Hero"] = hero
	data["Posts"] = posts
	data["Page"] = page
	h.render.Page(w, r, "home", h.page("Home", data))
}

// PostDetail renders a single published post with its comments and up to
// four related posts from the same category. Each GET counts as a view.
func (h *Handler) PostDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.posts.FindPublishedBySlug(slug)
	if err != nil {
		h.serverError(w, "find post", err)
		return
	}
	if post == nil {
		h.notFound(w)
		return
	}

	if err := h.posts.IncrementViews(post.ID); err != nil {
		h.serverError(w, "increment views", err)
		return
	}
	post.Views++

	h.renderDetail(w, r, post, "", "")
}

// SubmitComment handles the comment form on a post detail page. Only
// authenticated users create comments; an anonymous submission re-renders
// the page untouched. Soft failures re-render the form with the draft kept.
func (h *Handler) SubmitComment(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.posts.FindPublishedBySlug(slug)
	if err != nil {
		h.serverError(w, "find post", err)
		return
	}
	if post == nil {
		h.notFound(w)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		h.renderDetail(w, r, post, "", "")
		return
	}

	content := r.PostFormValue("content")
	if msg := validateComment(content); msg != "" {
		h.renderDetail(w, r, post, content, msg)
		return
	}

	_, err = h.comments.Create(&models.Comment{
		PostID:   post.ID,
		AuthorID: sess.UserID,
		Content:  sanitize.Text(content),
	})
	if err != nil {
		h.serverError(w, "create comment", err)
		return
	}

	flash.Success(w, r, "Your comment has been posted.")
	http.Redirect(w, r, "/post/"+post.Slug, http.StatusSeeOther)
}

// renderDetail renders the post detail page. The view counter is NOT
// incremented here; only PostDetail does that.
func (h *Handler) renderDetail(w http.ResponseWriter, r *http.Request, post *models.Post, commentDraft, commentError string) {
	comments, err := h.comments.ListActiveByPost(post.ID)
	if err != nil {
		h.serverError(w, "list comments", err)
		return
	}

	var related []models.Post
	if post.CategoryID != nil {
		related, err = h.posts.ListRelated(*post.CategoryID, post.ID, 4)
		if err != nil {
			h.serverError(w, "list related posts", err)
			return
		}
	}

	contentHTML, err := markdown.ToHTML(post.Content)
	if err != nil {
		h.serverError(w, "render markdown", err)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	h.render.Page(w, r, "post_detail", h.page(post.Title, map[string]any{
		"Post":         post,
		"Comments":     comments,
		"Related":      related,
		"ContentHTML":  sanitize.HTML(contentHTML),
		"CanModify":    policy.CanModify(sess, post),
		"CommentDraft": commentDraft,
		"CommentError": commentError,
	}))
}
