package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"reelblog/internal/flash"
	"reelblog/internal/models"
	"reelblog/internal/slug"
	"reelblog/internal/store"
)

// recentCommentsLimit bounds the moderation view.
const recentCommentsLimit = 100

// AdminDashboard shows entity counts and links to the management pages.
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	postCount, err := h.posts.Count()
	if err != nil {
		h.serverError(w, "count posts", err)
		return
	}
	commentCount, err := h.comments.Count()
	if err != nil {
		h.serverError(w, "count comments", err)
		return
	}
	userCount, err := h.users.Count()
	if err != nil {
		h.serverError(w, "count users", err)
		return
	}
	cats, err := h.categories.List()
	if err != nil {
		h.serverError(w, "list categories", err)
		return
	}

	h.render.Page(w, r, "admin_dashboard", h.page("Admin", map[string]any{
		"PostCount":     postCount,
		"CommentCount":  commentCount,
		"CategoryCount": len(cats),
		"UserCount":     userCount,
	}))
}

// AdminPosts lists all posts with optional title search and status filter.
func (h *Handler) AdminPosts(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	status := models.PostStatus(r.URL.Query().Get("status"))
	switch status {
	case models.PostStatusDraft, models.PostStatusPublished:
	default:
		status = ""
	}

	posts, err := h.posts.Search(query, status)
	if err != nil {
		h.serverError(w, "search posts", err)
		return
	}

	h.render.Page(w, r, "admin_posts", h.page("Posts", map[string]any{
		"Posts":  posts,
		"Query":  query,
		"Status": string(status),
	}))
}

// AdminCategories lists all categories with their published post counts.
func (h *Handler) AdminCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List()
	if err != nil {
		h.serverError(w, "list categories", err)
		return
	}
	h.render.Page(w, r, "admin_categories", h.page("Categories", map[string]any{
		"Categories": cats,
	}))
}

// AdminNewCategoryForm renders the empty category form.
func (h *Handler) AdminNewCategoryForm(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, r, "admin_category_form", h.page("New category", map[string]any{}))
}

// AdminCreateCategory handles the category creation form. The slug is
// derived from the name.
func (h *Handler) AdminCreateCategory(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PostFormValue("name"))
	if msg := validateCategoryName(name); msg != "" {
		h.render.Page(w, r, "admin_category_form", h.page("New category", map[string]any{
			"Errors": []string{msg},
			"Name":   name,
		}))
		return
	}

	_, err := h.categories.Create(&models.Category{Name: name, Slug: slug.Generate(name)})
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.render.Page(w, r, "admin_category_form", h.page("New category", map[string]any{
				"Errors": []string{"A category with that name already exists."},
				"Name":   name,
			}))
			return
		}
		h.serverError(w, "create category", err)
		return
	}

	flash.Success(w, r, "Category created.")
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// AdminEditCategoryForm renders the edit form for a category.
func (h *Handler) AdminEditCategoryForm(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.categoryFromURL(w, r)
	if !ok {
		return
	}
	h.render.Page(w, r, "admin_category_form", h.page("Edit category", map[string]any{
		"Category": cat,
		"Name":     cat.Name,
	}))
}

// AdminUpdateCategory renames a category. The slug follows the new name.
func (h *Handler) AdminUpdateCategory(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.categoryFromURL(w, r)
	if !ok {
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	if msg := validateCategoryName(name); msg != "" {
		h.render.Page(w, r, "admin_category_form", h.page("Edit category", map[string]any{
			"Category": cat,
			"Errors":   []string{msg},
			"Name":     name,
		}))
		return
	}

	cat.Name = name
	cat.Slug = slug.Generate(name)
	if err := h.categories.Update(cat); err != nil {
		if store.IsUniqueViolation(err) {
			h.render.Page(w, r, "admin_category_form", h.page("Edit category", map[string]any{
				"Category": cat,
				"Errors":   []string{"A category with that name already exists."},
				"Name":     name,
			}))
			return
		}
		h.serverError(w, "update category", err)
		return
	}

	flash.Success(w, r, "Category updated.")
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// AdminDeleteCategory removes a category. Its posts survive uncategorized.
func (h *Handler) AdminDeleteCategory(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.categoryFromURL(w, r)
	if !ok {
		return
	}

	if err := h.categories.Delete(cat.ID); err != nil {
		h.serverError(w, "delete category", err)
		return
	}

	flash.Success(w, r, "Category deleted.")
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// AdminComments shows the newest comments across all posts, hidden ones
// included, for moderation.
func (h *Handler) AdminComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListRecent(recentCommentsLimit)
	if err != nil {
		h.serverError(w, "list recent comments", err)
		return
	}
	h.render.Page(w, r, "admin_comments", h.page("Comments", map[string]any{
		"Comments": comments,
	}))
}

// AdminToggleComment flips a comment between visible and hidden.
func (h *Handler) AdminToggleComment(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.commentFromURL(w, r)
	if !ok {
		return
	}

	if err := h.comments.SetActive(comment.ID, !comment.Active); err != nil {
		h.serverError(w, "toggle comment", err)
		return
	}

	http.Redirect(w, r, "/admin/comments", http.StatusSeeOther)
}

// AdminDeleteComment permanently removes a comment.
func (h *Handler) AdminDeleteComment(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.commentFromURL(w, r)
	if !ok {
		return
	}

	if err := h.comments.Delete(comment.ID); err != nil {
		h.serverError(w, "delete comment", err)
		return
	}

	flash.Success(w, r, "Comment deleted.")
	http.Redirect(w, r, "/admin/comments", http.StatusSeeOther)
}

// categoryFromURL loads the category named by the {id} URL parameter.
func (h *Handler) categoryFromURL(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w)
		return nil, false
	}
	cat, err := h.categories.FindByID(id)
	if err != nil {
		h.serverError(w, "find category", err)
		return nil, false
	}
	if cat == nil {
		h.notFound(w)
		return nil, false
	}
	return cat, true
}

// commentFromURL loads the comment named by the {id} URL parameter.
func (h *Handler) commentFromURL(w http.ResponseWriter, r *http.Request) (*models.Comment, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w)
		return nil, false
	}
	comment, err := h.comments.FindByID(id)
	if err != nil {
		h.serverError(w, "find comment", err)
		return nil, false
	}
	if comment == nil {
		h.notFound(w)
		return nil, false
	}
	return comment, true
}
