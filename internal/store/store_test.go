// store_test.go provides shared test infrastructure for store integration
// tests. Tests are skipped when PostgreSQL is unavailable.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"reelblog/internal/database"
	"reelblog/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

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

// newUser inserts a uniquely named user and registers cleanup.
func newUser(t *testing.T, db *sql.DB, isStaff bool) *models.User {
	t.Helper()

	suffix := uuid.New().String()[:8]
	u, err := NewUserStore(db).Create(
		"store-"+suffix, "store-"+suffix+"@example.com",
		"password123", "Store Tester", isStaff,
	)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM users WHERE id = $1`, u.ID) })
	return u
}

// newPost inserts a post and registers cleanup.
func newPost(t *testing.T, db *sql.DB, author *models.User, status models.PostStatus, featured bool) *models.Post {
	t.Helper()

	suffix := uuid.New().String()[:8]
	p, err := NewPostStore(db).Create(&models.Post{
		Title:      "Store Post " + suffix,
		Slug:       "store-post-" + suffix,
		AuthorID:   author.ID,
		Status:     status,
		Content:    "content",
		Excerpt:    "excerpt",
		IsFeatured: featured,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM posts WHERE id = $1`, p.ID) })
	return p
}
