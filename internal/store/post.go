package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"reelblog/internal/models"
)

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postSelect is the joined projection used by every read. Author and
// category names ride along as annotations so listings render without
// per-row lookups.
const postSelect = `
	SELECT p.id, p.title, p.slug, p.author_id, p.category_id, p.status,
	       p.content, p.excerpt, p.featured_image, p.is_featured, p.views,
	       p.created_at, p.updated_at,
	       u.display_name, c.name, c.slug
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id`

func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.AuthorID, &p.CategoryID, &p.Status,
		&p.Content, &p.Excerpt, &p.FeaturedImage, &p.IsFeatured, &p.Views,
		&p.CreatedAt, &p.UpdatedAt,
		&p.AuthorName, &p.CategoryName, &p.CategorySlug,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	defer rows.Close()
	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindFeatured returns the hero post: the newest published post flagged
// is_featured, or nil when none exists. At most one post is conceptually
// "the" hero, but uniqueness is not enforced, so newest wins.
func (s *PostStore) FindFeatured() (*models.Post, error) {
	row := s.db.QueryRow(postSelect + `
		WHERE p.status = 'published' AND p.is_featured
		ORDER BY p.created_at DESC
		LIMIT 1`)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find featured post: %w", err)
	}
	return p, nil
}

// ListPublished returns a page of published posts, newest first, excluding
// excludeID when non-nil (the hero post never repeats in the grid).
func (s *PostStore) ListPublished(excludeID *uuid.UUID, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(postSelect+`
		WHERE p.status = 'published' AND ($1::uuid IS NULL OR p.id <> $1)
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`,
		excludeID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return collectPosts(rows)
}

// CountPublished returns the number of published posts, excluding
// excludeID when non-nil.
func (s *PostStore) CountPublished(excludeID *uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM posts
		WHERE status = 'published' AND ($1::uuid IS NULL OR id <> $1)
	`, excludeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count published posts: %w", err)
	}
	return count, nil
}

// ListPublishedByCategory returns a page of published posts in the category
// with the given slug, newest first.
func (s *PostStore) ListPublishedByCategory(categorySlug string, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(postSelect+`
		WHERE p.status = 'published' AND c.slug = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`,
		categorySlug, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list posts by category: %w", err)
	}
	return collectPosts(rows)
}

// CountPublishedByCategory returns the number of published posts in the
// category with the given slug.
func (s *PostStore) CountPublishedByCategory(categorySlug string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM posts p
		JOIN categories c ON c.id = p.category_id
		WHERE p.status = 'published' AND c.slug = $1
	`, categorySlug).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts by category: %w", err)
	}
	return count, nil
}

// FindPublishedBySlug retrieves a published post by slug. Drafts and
// unknown slugs both return nil — the public site treats them identically.
func (s *PostStore) FindPublishedBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(postSelect+` WHERE p.slug = $1 AND p.status = 'published'`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find published post by slug: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a post by slug regardless of status. Used by the
// edit and delete flows, which operate on drafts too.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(postSelect+` WHERE p.slug = $1`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(postSelect+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with generated fields populated.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO posts (title, slug, author_id, category_id, status,
		                   content, excerpt, featured_image, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, p.Title, p.Slug, p.AuthorID, p.CategoryID, p.Status,
		p.Content, p.Excerpt, p.FeaturedImage, p.IsFeatured,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.FindByID(id)
}

// Update modifies the editable fields of an existing post. Views and
// author are never touched here.
func (s *PostStore) Update(p *models.Post) error {
	_, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, slug = $2, category_id = $3, status = $4,
			content = $5, excerpt = $6, featured_image = $7,
			is_featured = $8, updated_at = NOW()
		WHERE id = $9
	`, p.Title, p.Slug, p.CategoryID, p.Status,
		p.Content, p.Excerpt, p.FeaturedImage, p.IsFeatured, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post by ID. Comments cascade at the storage layer.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter by one in a single UPDATE of only
// that column, so concurrent detail views serialize at the row and the
// counter never goes backwards.
func (s *PostStore) IncrementViews(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE posts SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// ListRelated returns up to limit published posts sharing the given
// category, excluding the post itself, newest first.
func (s *PostStore) ListRelated(categoryID, excludeID uuid.UUID, limit int) ([]models.Post, error) {
	rows, err := s.db.Query(postSelect+`
		WHERE p.status = 'published' AND p.category_id = $1 AND p.id <> $2
		ORDER BY p.created_at DESC
		LIMIT $3`,
		categoryID, excludeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list related posts: %w", err)
	}
	return collectPosts(rows)
}

// Search returns posts for the admin browser, optionally filtered by a
// title substring and/or status, newest first.
func (s *PostStore) Search(titleQuery string, status models.PostStatus) ([]models.Post, error) {
	rows, err := s.db.Query(postSelect+`
		WHERE ($1 = '' OR p.title ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR p.status = $2::text)
		ORDER BY p.created_at DESC`,
		titleQuery, string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return collectPosts(rows)
}

// Count returns the total number of posts regardless of status.
func (s *PostStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}
