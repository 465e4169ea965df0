// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Redis are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"reelblog/internal/config"
	"reelblog/internal/database"
	"reelblog/internal/middleware"
	"reelblog/internal/models"
	"reelblog/internal/render"
	"reelblog/internal/session"
	"reelblog/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "reelblog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "reelblog")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testRedisClient returns a Redis client for handler tests on DB 15.
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("REDIS_HOST", "localhost")
	port := envOr("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Redis      *redis.Client
	Sessions   *session.Store
	Users      *store.UserStore
	Posts      *store.PostStore
	Comments   *store.CommentStore
	Categories *store.CategoryStore
	H          *Handler
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	rc := testRedisClient(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	cfg := &config.Config{
		Env:       "testing",
		UploadDir: t.TempDir(),
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	sessions := session.NewStore(rc, false)
	users := store.NewUserStore(db)
	posts := store.NewPostStore(db)
	comments := store.NewCommentStore(db)
	categories := store.NewCategoryStore(db)

	h := New(log, cfg, renderer, sessions, users, posts, comments, categories)

	return &testEnv{
		DB:         db,
		Redis:      rc,
		Sessions:   sessions,
		Users:      users,
		Posts:      posts,
		Comments:   comments,
		Categories: categories,
		H:          h,
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// createTestUser inserts a user with a unique name and registers cleanup.
func createTestUser(t *testing.T, env *testEnv, isStaff bool) *models.User {
	t.Helper()

	suffix := uuid.New().String()[:8]
	user, err := env.Users.Create(
		"tester-"+suffix,
		"tester-"+suffix+"@example.com",
		"password123",
		"Tester "+suffix,
		isStaff,
	)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec(`DELETE FROM users WHERE id = $1`, user.ID)
	})
	return user
}

// createTestPost inserts a post owned by the given user and registers cleanup.
func createTestPost(t *testing.T, env *testEnv, author *models.User, status models.PostStatus) *models.Post {
	t.Helper()

	suffix := uuid.New().String()[:8]
	post, err := env.Posts.Create(&models.Post{
		Title:    "Test Post " + suffix,
		Slug:     "test-post-" + suffix,
		AuthorID: author.ID,
		Status:   status,
		Content:  "Some **markdown** content.",
		Excerpt:  "An excerpt.",
	})
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec(`DELETE FROM posts WHERE id = $1`, post.ID)
	})
	return post
}

// sessionFor builds session data matching the given user.
func sessionFor(user *models.User) *session.Data {
	return &session.Data{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		IsStaff:     user.IsStaff,
		TwoFADone:   true,
	}
}
