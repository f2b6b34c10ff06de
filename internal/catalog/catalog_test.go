package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/johnwards/foodorder/internal/catalog"
	"github.com/johnwards/foodorder/internal/store"
	"github.com/johnwards/foodorder/internal/testhelpers"
)

func setupCatalog(t *testing.T) (*catalog.Service, map[string]string) {
	t.Helper()
	st := store.New(testhelpers.NewMigratedDB(t))
	ctx := context.Background()

	ids := map[string]string{}
	for _, name := range []string{"Pizzas", "Burgers"} {
		c, err := st.Categories.Create(ctx, name, "")
		if err != nil {
			t.Fatalf("create category: %v", err)
		}
		ids[name] = c.ID
	}

	for _, m := range []store.Menu{
		{Name: "Pepperoni Pizza", Price: decimal.NewFromInt(30), CategoryID: ids["Pizzas"]},
		{Name: "Classic Margherita Pizza", Price: decimal.NewFromInt(24), CategoryID: ids["Pizzas"]},
		{Name: "Classic Cheeseburger", Price: decimal.NewFromInt(26), CategoryID: ids["Burgers"]},
	} {
		if _, err := st.Menus.Create(ctx, &m); err != nil {
			t.Fatalf("create menu: %v", err)
		}
	}

	return catalog.New(st.Menus, st.Categories), ids
}

func TestGetMenu(t *testing.T) {
	svc, ids := setupCatalog(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params catalog.GetMenuParams
		want   int
	}{
		{"all", catalog.GetMenuParams{}, 3},
		{"by category", catalog.GetMenuParams{Category: ids["Pizzas"]}, 2},
		{"by query", catalog.GetMenuParams{Query: "classic"}, 2},
		{"by query ignoring case", catalog.GetMenuParams{Query: "CHEESE"}, 1},
		{"category and query", catalog.GetMenuParams{Category: ids["Pizzas"], Query: "classic"}, 1},
		{"no match", catalog.GetMenuParams{Query: "sushi"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menus, err := svc.GetMenu(ctx, tt.params)
			if err != nil {
				t.Fatalf("GetMenu: %v", err)
			}
			if menus == nil {
				t.Fatal("expected non-nil slice")
			}
			if len(menus) != tt.want {
				t.Errorf("got %d items, want %d", len(menus), tt.want)
			}
		})
	}
}

func TestGetCategories(t *testing.T) {
	svc, _ := setupCatalog(t)

	categories, err := svc.GetCategories(context.Background())
	if err != nil {
		t.Fatalf("GetCategories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(categories))
	}
	if categories[0].Name != "Pizzas" {
		t.Errorf("categories[0].Name = %q, want %q", categories[0].Name, "Pizzas")
	}
}

type failingMenus struct{ store.MenuStore }

func (failingMenus) List(context.Context, store.MenuFilter) ([]*store.Menu, error) {
	return nil, errors.New("relation \"menus\" does not exist")
}

type failingCategories struct{ store.CategoryStore }

func (failingCategories) List(context.Context) ([]*store.Category, error) {
	return nil, errors.New("permission denied for table categories")
}

func TestCatalogErrorsCarryBackendMessage(t *testing.T) {
	svc := catalog.New(failingMenus{}, failingCategories{})
	ctx := context.Background()

	_, err := svc.GetMenu(ctx, catalog.GetMenuParams{})
	var ce *catalog.Error
	if !errors.As(err, &ce) {
		t.Fatalf("GetMenu err = %v, want *catalog.Error", err)
	}
	if ce.Message != `relation "menus" does not exist` {
		t.Errorf("Message = %q", ce.Message)
	}

	_, err = svc.GetCategories(ctx)
	if !errors.As(err, &ce) {
		t.Fatalf("GetCategories err = %v, want *catalog.Error", err)
	}
	if ce.Message != "permission denied for table categories" {
		t.Errorf("Message = %q", ce.Message)
	}
}
