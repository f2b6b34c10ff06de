package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/johnwards/foodorder/internal/store"
	"github.com/johnwards/foodorder/internal/testhelpers"
)

var _ store.CategoryStore = (*store.SQLiteCategoryStore)(nil)

func TestCategoryCreate(t *testing.T) {
	s := store.NewSQLiteCategoryStore(testhelpers.NewMigratedDB(t))
	ctx := context.Background()

	c, err := s.Create(ctx, "Pizza", "Stone baked")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if c.ID == "" {
		t.Error("expected non-empty ID")
	}
	if c.Name != "Pizza" {
		t.Errorf("Name = %q, want %q", c.Name, "Pizza")
	}
	if c.Description != "Stone baked" {
		t.Errorf("Description = %q, want %q", c.Description, "Stone baked")
	}
	if c.CreatedAt == "" {
		t.Error("expected CreatedAt to be set")
	}
}

func TestCategoryGet(t *testing.T) {
	s := store.NewSQLiteCategoryStore(testhelpers.NewMigratedDB(t))
	ctx := context.Background()

	created, err := s.Create(ctx, "Burgers", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Burgers" {
		t.Errorf("Name = %q, want %q", got.Name, "Burgers")
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("get missing: err = %v, want ErrNotFound", err)
	}
}

func TestCategoryList(t *testing.T) {
	s := store.NewSQLiteCategoryStore(testhelpers.NewMigratedDB(t))
	ctx := context.Background()

	empty, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", empty)
	}

	for _, name := range []string{"Pizza", "Burgers", "Wraps"} {
		if _, err := s.Create(ctx, name, ""); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	categories, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(categories))
	}
	if categories[0].Name != "Pizza" || categories[2].Name != "Wraps" {
		t.Errorf("unexpected order: %s, %s, %s", categories[0].Name, categories[1].Name, categories[2].Name)
	}
}
