package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader reply on a post. Comments are created active and can
// only be hidden afterwards by staff moderation; they are never edited.
// Deleting a post removes its comments with it.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Content   string    `json:"content"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`

	// Annotations populated by joined queries.
	AuthorName string `json:"author_name,omitempty"`
	PostTitle  string `json:"post_title,omitempty"`
	PostSlug   string `json:"post_slug,omitempty"`
}
