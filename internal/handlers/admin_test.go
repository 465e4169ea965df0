package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"reelblog/internal/models"
)

func TestAdminDashboardCounts(t *testing.T) {
	env := newTestEnv(t)
	staff := createTestUser(t, env, true)
	createTestPost(t, env, staff, models.PostStatusPublished)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(staff)))
	rec := httptest.NewRecorder()
	env.H.AdminDashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, label := range []string{"Posts", "Comments", "Categories", "Users"} {
		if !strings.Contains(body, label) {
			t.Errorf("dashboard missing %q", label)
		}
	}
}

func TestAdminPostsSearch(t *testing.T) {
	env := newTestEnv(t)
	staff := createTestUser(t, env, true)
	post := createTestPost(t, env, staff, models.PostStatusDraft)

	// Drafts are visible in the admin browser, unlike the public site.
	req := httptest.NewRequest(http.MethodGet, "/admin/posts?q="+url.QueryEscape(post.Title), nil)
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(staff)))
	rec := httptest.NewRecorder()
	env.H.AdminPosts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), post.Title) {
		t.Errorf("search did not find %q", post.Title)
	}

	// Status filter: published-only must exclude the draft.
	req = httptest.NewRequest(http.MethodGet, "/admin/posts?q="+url.QueryEscape(post.Title)+"&status=published", nil)
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(staff)))
	rec = httptest.NewRecorder()
	env.H.AdminPosts(rec, req)

	if strings.Contains(rec.Body.String(), post.Slug) {
		t.Error("status filter did not exclude the draft")
	}
}

func TestAdminCategoryLifecycle(t *testing.T) {
	env := newTestEnv(t)
	staff := createTestUser(t, env, true)
	sess := sessionFor(staff)

	suffix := uuid.New().String()[:8]

	// Create.
	form := url.Values{"name": {"Space Operas " + suffix}}
	req := postFormRequest(t, "/admin/categories/new", form)
	req = req.WithContext(ctxWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	env.H.AdminCreateCategory(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create status = %d, want 303; body: %s", rec.Code, rec.Body.String())
	}

	cat, err := env.Categories.FindBySlug("space-operas-" + suffix)
	if err != nil || cat == nil {
		t.Fatalf("category not created: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec(`DELETE FROM categories WHERE id = $1`, cat.ID) })

	// Rename; the slug follows.
	form = url.Values{"name": {"Space Westerns " + suffix}}
	req = postFormRequest(t, "/admin/categories/"+cat.ID.String()+"/edit", form)
	req = withChiURLParam(req, "id", cat.ID.String())
	req = req.WithContext(ctxWithSession(req.Context(), sess))
	rec = httptest.NewRecorder()
	env.H.AdminUpdateCategory(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("update status = %d, want 303", rec.Code)
	}
	renamed, _ := env.Categories.FindByID(cat.ID)
	if want := "space-westerns-" + suffix; renamed.Slug != want {
		t.Errorf("slug = %q, want %q", renamed.Slug, want)
	}

	// Delete.
	req = postFormRequest(t, "/admin/categories/"+cat.ID.String()+"/delete", url.Values{})
	req = withChiURLParam(req, "id", cat.ID.String())
	req = req.WithContext(ctxWithSession(req.Context(), sess))
	rec = httptest.NewRecorder()
	env.H.AdminDeleteCategory(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d, want 303", rec.Code)
	}
	gone, _ := env.Categories.FindByID(cat.ID)
	if gone != nil {
		t.Error("category still exists after delete")
	}
}

func TestAdminDeleteCategoryKeepsPosts(t *testing.T) {
	env := newTestEnv(t)
	staff := createTestUser(t, env, true)

	cat, err := env.Categories.Create(&models.Category{Name: "Doomed", Slug: "doomed-" + staff.Username})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec(`DELETE FROM categories WHERE id = $1`, cat.ID) })

	post := createTestPost(t, env, staff, models.PostStatusPublished)
	post.CategoryID = &cat.ID
	if err := env.Posts.Update(post); err != nil {
		t.Fatalf("assign category: %v", err)
	}

	req := postFormRequest(t, "/admin/categories/"+cat.ID.String()+"/delete", url.Values{})
	req = withChiURLParam(req, "id", cat.ID.String())
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(staff)))
	rec := httptest.NewRecorder()
	env.H.AdminDeleteCategory(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d, want 303", rec.Code)
	}

	// The post survives, uncategorized.
	survivor, err := env.Posts.FindByID(post.ID)
	if err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if survivor == nil {
		t.Fatal("post deleted with its category")
	}
	if survivor.CategoryID != nil {
		t.Error("post still references the deleted category")
	}
}

func TestAdminCommentModeration(t *testing.T) {
	env := newTestEnv(t)
	staff := createTestUser(t, env, true)
	reader := createTestUser(t, env, false)
	post := createTestPost(t, env, staff, models.PostStatusPublished)

	comment, err := env.Comments.Create(&models.Comment{
		PostID: post.ID, AuthorID: reader.ID, Content: "borderline take",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	// The moderation list shows it.
	req := httptest.NewRequest(http.MethodGet, "/admin/comments", nil)
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(staff)))
	rec := httptest.NewRecorder()
	env.H.AdminComments(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "borderline take") {
		t.Error("comment missing from moderation list")
	}

	// Hide it.
	req = postFormRequest(t, "/admin/comments/"+comment.ID.String()+"/toggle", url.Values{})
	req = withChiURLParam(req, "id", comment.ID.String())
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(staff)))
	rec = httptest.NewRecorder()
	env.H.AdminToggleComment(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("toggle status = %d, want 303", rec.Code)
	}
	hidden, _ := env.Comments.FindByID(comment.ID)
	if hidden.Active {
		t.Error("comment still active after toggle")
	}

	// Toggle back.
	req = postFormRequest(t, "/admin/comments/"+comment.ID.String()+"/toggle", url.Values{})
	req = withChiURLParam(req, "id", comment.ID.String())
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(staff)))
	env.H.AdminToggleComment(httptest.NewRecorder(), req)
	shown, _ := env.Comments.FindByID(comment.ID)
	if !shown.Active {
		t.Error("comment not active after second toggle")
	}

	// Delete it.
	req = postFormRequest(t, "/admin/comments/"+comment.ID.String()+"/delete", url.Values{})
	req = withChiURLParam(req, "id", comment.ID.String())
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(staff)))
	rec = httptest.NewRecorder()
	env.H.AdminDeleteComment(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d, want 303", rec.Code)
	}
	gone, _ := env.Comments.FindByID(comment.ID)
	if gone != nil {
		t.Error("comment still exists after delete")
	}
}

func TestAdminUnknownCategoryIs404(t *testing.T) {
	env := newTestEnv(t)
	staff := createTestUser(t, env, true)

	req := httptest.NewRequest(http.MethodGet, "/admin/categories/not-a-uuid/edit", nil)
	req = withChiURLParam(req, "id", "not-a-uuid")
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(staff)))
	rec := httptest.NewRecorder()
	env.H.AdminEditCategoryForm(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("bad id status = %d, want 404", rec.Code)
	}
}
