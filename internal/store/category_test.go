package store

import (
	"testing"

	"github.com/google/uuid"

	"reelblog/internal/models"
)

func TestCategoryStorePostCountsPublishedOnly(t *testing.T) {
	db := testDB(t)
	author := newUser(t, db, false)
	categories := NewCategoryStore(db)
	posts := NewPostStore(db)

	suffix := uuid.New().String()[:8]
	cat, err := categories.Create(&models.Category{
		Name: "Count " + suffix, Slug: "count-" + suffix,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM categories WHERE id = $1`, cat.ID) })

	published := newPost(t, db, author, models.PostStatusPublished, false)
	draft := newPost(t, db, author, models.PostStatusDraft, false)
	for _, p := range []*models.Post{published, draft} {
		p.CategoryID = &cat.ID
		if err := posts.Update(p); err != nil {
			t.Fatalf("assign category: %v", err)
		}
	}

	all, err := categories.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, c := range all {
		if c.ID == cat.ID {
			if c.PostCount != 1 {
				t.Errorf("PostCount = %d, want 1 (drafts excluded)", c.PostCount)
			}
			return
		}
	}
	t.Error("created category missing from List")
}

func TestCategoryStoreDeleteOrphansPosts(t *testing.T) {
	db := testDB(t)
	author := newUser(t, db, false)
	categories := NewCategoryStore(db)
	posts := NewPostStore(db)

	suffix := uuid.New().String()[:8]
	cat, err := categories.Create(&models.Category{
		Name: "Orphan " + suffix, Slug: "orphan-" + suffix,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	post := newPost(t, db, author, models.PostStatusPublished, false)
	post.CategoryID = &cat.ID
	if err := posts.Update(post); err != nil {
		t.Fatalf("assign category: %v", err)
	}

	if err := categories.Delete(cat.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := posts.FindByID(post.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got == nil {
		t.Fatal("post deleted with category")
	}
	if got.CategoryID != nil {
		t.Error("post still points at deleted category")
	}
}
