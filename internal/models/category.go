package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups posts for navigation. Categories are managed through the
// staff admin area only; the slug uniquely addresses a category in URLs.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// PostCount is an annotation populated by list queries, not a column.
	PostCount int `json:"post_count,omitempty"`
}
