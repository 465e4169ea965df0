package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"reelblog/internal/flash"
	"reelblog/internal/middleware"
	"reelblog/internal/models"
	"reelblog/internal/policy"
	"reelblog/internal/sanitize"
	"reelblog/internal/slug"
	"reelblog/internal/store"
)

// maxUploadSize caps featured image uploads at 10 MB.
const maxUploadSize = 10 << 20

// postForm holds the parsed and sanitized post form fields.
type postForm struct {
	Title      string
	CategoryID *uuid.UUID
	Excerpt    string
	Content    string
	Status     models.PostStatus
	IsFeatured bool
}

// NewPostForm renders the empty post creation form.
func (h *Handler) NewPostForm(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, r, "post_form", h.page("New post", map[string]any{
		"Status": string(models.PostStatusPublished),
	}))
}

// CreatePost handles the post creation form. The slug is derived from the
// title; a duplicate slug is a form error, not a server error.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	form, errs := h.parsePostForm(r)
	if len(errs) > 0 {
		h.renderPostForm(w, r, "New post", nil, form, errs)
		return
	}

	imagePath, err := h.saveFeaturedImage(r)
	if err != nil {
		h.renderPostForm(w, r, "New post", nil, form, []string{err.Error()})
		return
	}

	post := &models.Post{
		Title:         form.Title,
		Slug:          slug.Generate(form.Title),
		AuthorID:      sess.UserID,
		CategoryID:    form.CategoryID,
		Status:        form.Status,
		Content:       form.Content,
		Excerpt:       form.Excerpt,
		FeaturedImage: imagePath,
		IsFeatured:    form.IsFeatured,
	}

	created, err := h.posts.Create(post)
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderPostForm(w, r, "New post", nil, form,
				[]string{"A post with a very similar title already exists. Pick a different title."})
			return
		}
		h.serverError(w, "create post", err)
		return
	}

	flash.Success(w, r, "Your post has been created.")
	http.Redirect(w, r, "/post/"+created.Slug, http.StatusSeeOther)
}

// EditPostForm renders the edit form for a post. Users who are neither the
// author nor staff are bounced back to the post with a message.
func (h *Handler) EditPostForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.authorizedPost(w, r)
	if !ok {
		return
	}

	form := &postForm{
		Title:      post.Title,
		CategoryID: post.CategoryID,
		Excerpt:    post.Excerpt,
		Content:    post.Content,
		Status:     post.Status,
		IsFeatured: post.IsFeatured,
	}
	h.renderPostForm(w, r, "Edit post", post, form, nil)
}

// UpdatePost handles the edit form submission. A changed title regenerates
// the slug, so old links to the post stop resolving.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.authorizedPost(w, r)
	if !ok {
		return
	}

	form, errs := h.parsePostForm(r)
	if len(errs) > 0 {
		h.renderPostForm(w, r, "Edit post", post, form, errs)
		return
	}

	imagePath, err := h.saveFeaturedImage(r)
	if err != nil {
		h.renderPostForm(w, r, "Edit post", post, form, []string{err.Error()})
		return
	}

	post.Title = form.Title
	post.Slug = slug.Generate(form.Title)
	post.CategoryID = form.CategoryID
	post.Status = form.Status
	post.Content = form.Content
	post.Excerpt = form.Excerpt
	post.IsFeatured = form.IsFeatured
	if imagePath != nil {
		post.FeaturedImage = imagePath
	}

	if err := h.posts.Update(post); err != nil {
		if store.IsUniqueViolation(err) {
			h.renderPostForm(w, r, "Edit post", post, form,
				[]string{"A post with a very similar title already exists. Pick a different title."})
			return
		}
		h.serverError(w, "update post", err)
		return
	}

	flash.Success(w, r, "Your post has been updated.")
	http.Redirect(w, r, "/post/"+post.Slug, http.StatusSeeOther)
}

// ConfirmDeletePost renders the confirmation page before a delete.
func (h *Handler) ConfirmDeletePost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.authorizedPost(w, r)
	if !ok {
		return
	}

	h.render.Page(w, r, "post_confirm_delete", h.page("Delete post", map[string]any{
		"Post": post,
	}))
}

// DeletePost removes a post and its comments after confirmation.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.authorizedPost(w, r)
	if !ok {
		return
	}

	if err := h.posts.Delete(post.ID); err != nil {
		h.serverError(w, "delete post", err)
		return
	}

	flash.Success(w, r, "The post has been deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// authorizedPost loads the post named in the URL and checks that the
// current user may modify it. An unauthorized user gets a flash message and
// a redirect back to the post; nothing is mutated. Returns ok=false when
// the caller should stop.
func (h *Handler) authorizedPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	s := chi.URLParam(r, "slug")
	post, err := h.posts.FindBySlug(s)
	if err != nil {
		h.serverError(w, "find post", err)
		return nil, false
	}
	if post == nil {
		h.notFound(w)
		return nil, false
	}

	sess := middleware.SessionFromCtx(r.Context())
	if !policy.CanModify(sess, post) {
		flash.Error(w, r, "You can only modify your own posts.")
		http.Redirect(w, r, "/post/"+post.Slug, http.StatusSeeOther)
		return nil, false
	}
	return post, true
}

// parsePostForm reads and sanitizes the post form fields.
func (h *Handler) parsePostForm(r *http.Request) (*postForm, []string) {
	// Multipart because of the image field; plain forms still parse.
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && err != http.ErrNotMultipart {
		return &postForm{}, []string{"Could not read the submitted form."}
	}

	form := &postForm{
		Title:      sanitize.Text(strings.TrimSpace(r.FormValue("title"))),
		Excerpt:    sanitize.Text(strings.TrimSpace(r.FormValue("excerpt"))),
		Content:    r.FormValue("content"),
		IsFeatured: r.FormValue("is_featured") == "1",
	}

	switch models.PostStatus(r.FormValue("status")) {
	case models.PostStatusDraft:
		form.Status = models.PostStatusDraft
	default:
		form.Status = models.PostStatusPublished
	}

	if raw := r.FormValue("category_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			form.CategoryID = &id
		}
	}

	errs := validatePostForm(form.Title, form.Content)
	if utf8.RuneCountInString(form.Excerpt) > maxExcerptLength {
		errs = append(errs, fmt.Sprintf("Excerpt must be at most %d characters.", maxExcerptLength))
	}
	return form, errs
}

// saveFeaturedImage stores an uploaded featured image on disk and returns
// its public path, or nil when no file was uploaded.
func (h *Handler) saveFeaturedImage(r *http.Request) (*string, error) {
	file, header, err := r.FormFile("featured_image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		// No multipart body at all means no upload.
		return nil, nil
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return nil, fmt.Errorf("unsupported image type %q", ext)
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare upload directory: %w", err)
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(h.cfg.UploadDir, name))
	if err != nil {
		return nil, fmt.Errorf("store uploaded image: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, maxUploadSize)); err != nil {
		return nil, fmt.Errorf("store uploaded image: %w", err)
	}

	path := "/uploads/" + name
	return &path, nil
}

// renderPostForm re-renders the post form with the user's input and errors.
func (h *Handler) renderPostForm(w http.ResponseWriter, r *http.Request, title string, post *models.Post, form *postForm, errs []string) {
	categoryID := ""
	if form.CategoryID != nil {
		categoryID = form.CategoryID.String()
	}

	data := map[string]any{
		"Title":      form.Title,
		"CategoryID": categoryID,
		"Excerpt":    form.Excerpt,
		"Content":    form.Content,
		"Status":     string(form.Status),
		"IsFeatured": form.IsFeatured,
		"Errors":     errs,
	}
	if post != nil {
		data["Post"] = post
		if post.FeaturedImage != nil {
			data["FeaturedImage"] = *post.FeaturedImage
		}
	}
	h.render.Page(w, r, "post_form", h.page(title, data))
}
