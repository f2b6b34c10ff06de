package store_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/johnwards/foodorder/internal/store"
	"github.com/johnwards/foodorder/internal/testhelpers"
)

var _ store.CustomizationStore = (*store.SQLiteCustomizationStore)(nil)

func TestCustomizationCreateAndList(t *testing.T) {
	s := store.NewSQLiteCustomizationStore(testhelpers.NewMigratedDB(t))
	ctx := context.Background()

	c, err := s.Create(ctx, "Extra Cheese", decimal.RequireFromString("1.5"), store.CustomizationTopping)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == "" {
		t.Error("expected non-empty ID")
	}
	if !c.Price.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("Price = %s, want 1.5", c.Price)
	}
	if c.Type != store.CustomizationTopping {
		t.Errorf("Type = %q, want %q", c.Type, store.CustomizationTopping)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 customization, got %d", len(list))
	}
	if list[0].Name != "Extra Cheese" {
		t.Errorf("Name = %q, want %q", list[0].Name, "Extra Cheese")
	}
}

func TestCustomizationCreateRejectsUnknownType(t *testing.T) {
	s := store.NewSQLiteCustomizationStore(testhelpers.NewMigratedDB(t))

	_, err := s.Create(context.Background(), "Glitter", decimal.Zero, store.CustomizationType("garnish"))
	if err == nil {
		t.Fatal("expected error for unknown customization type")
	}
}

func TestCustomizationTypeValid(t *testing.T) {
	for _, typ := range []store.CustomizationType{"topping", "side", "size", "crust", "bread", "spice", "base", "sauce"} {
		if !typ.Valid() {
			t.Errorf("%q.Valid() = false, want true", typ)
		}
	}
	if store.CustomizationType("drink").Valid() {
		t.Error(`"drink".Valid() = true, want false`)
	}
}
