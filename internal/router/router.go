// Package router wires the HTTP routes to their handlers and middleware.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"reelblog/internal/config"
	"reelblog/internal/handlers"
	"reelblog/internal/middleware"
	"reelblog/internal/session"
	"reelblog/web"
)

// writeLimit is the rate limit for state-changing requests: 30 per minute
// per client IP.
const (
	writeLimit  = 30
	writeWindow = time.Minute
)

// New builds the application router. The returned cleanup function stops
// background goroutines owned by middleware.
func New(
	cfg *config.Config,
	h *handlers.Handler,
	sessions *session.Store,
) (chi.Router, func()) {
	r := chi.NewRouter()

	limiter := middleware.NewRateLimiter(writeLimit, writeWindow)

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessions))
	r.Use(middleware.CSRF)
	r.Use(limiter.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Public pages.
	r.Get("/", h.Home)
	r.Get("/post/{slug}", h.PostDetail)
	r.Post("/post/{slug}", h.SubmitComment)

	// Auth.
	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)

	// Signed-in users.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/logout", h.Logout)

		r.Get("/posts/new", h.NewPostForm)
		r.Post("/posts/new", h.CreatePost)
		r.Get("/post/{slug}/edit", h.EditPostForm)
		r.Post("/post/{slug}/edit", h.UpdatePost)
		r.Get("/post/{slug}/delete", h.ConfirmDeletePost)
		r.Post("/post/{slug}/delete", h.DeletePost)

		r.Get("/2fa/setup", h.TwoFASetupForm)
		r.Post("/2fa/setup", h.TwoFASetup)
		r.Get("/2fa/verify", h.TwoFAVerifyForm)
		r.Post("/2fa/verify", h.TwoFAVerify)
	})

	// Staff admin area.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireStaff)

		r.Get("/", h.AdminDashboard)
		r.Get("/posts", h.AdminPosts)

		r.Get("/categories", h.AdminCategories)
		r.Get("/categories/new", h.AdminNewCategoryForm)
		r.Post("/categories/new", h.AdminCreateCategory)
		r.Get("/categories/{id}/edit", h.AdminEditCategoryForm)
		r.Post("/categories/{id}/edit", h.AdminUpdateCategory)
		r.Post("/categories/{id}/delete", h.AdminDeleteCategory)

		r.Get("/comments", h.AdminComments)
		r.Post("/comments/{id}/toggle", h.AdminToggleComment)
		r.Post("/comments/{id}/delete", h.AdminDeleteComment)
	})

	// Static assets from the embedded filesystem; uploads from disk.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static))))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	return r, limiter.Stop
}
