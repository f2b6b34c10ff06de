package seed_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/johnwards/foodorder/internal/seed"
	"github.com/johnwards/foodorder/internal/storage"
	"github.com/johnwards/foodorder/internal/store"
	"github.com/johnwards/foodorder/internal/testhelpers"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

// imageServer serves fake images and counts requests per path.
//
//	/broken/...  500
//	/raw/...     PNG bytes without a Content-Type header
//	anything else  image/png
type imageServer struct {
	*httptest.Server
	mu   sync.Mutex
	hits map[string]int
}

func newImageServer(t *testing.T) *imageServer {
	t.Helper()
	s := &imageServer{hits: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.mu.Unlock()

		switch {
		case strings.HasPrefix(r.URL.Path, "/broken/"):
			http.Error(w, "boom", http.StatusInternalServerError)
		case strings.HasPrefix(r.URL.Path, "/raw/"):
			w.Header()["Content-Type"] = nil
			_, _ = w.Write(pngHeader)
		default:
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("image:" + r.URL.Path))
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *imageServer) hitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// countingTables counts batch deletes issued against the seeded tables.
type countingTables struct {
	store.TableStore
	mu      sync.Mutex
	deletes int
}

func (c *countingTables) DeleteIDs(ctx context.Context, table string, ids []string) (int64, error) {
	c.mu.Lock()
	c.deletes++
	c.mu.Unlock()
	return c.TableStore.DeleteIDs(ctx, table, ids)
}

func (c *countingTables) deleteCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deletes
}

// countingBucket counts batch removes issued against the bucket.
type countingBucket struct {
	storage.Bucket
	mu      sync.Mutex
	removes int
}

func (c *countingBucket) Remove(ctx context.Context, keys []string) error {
	c.mu.Lock()
	c.removes++
	c.mu.Unlock()
	return c.Bucket.Remove(ctx, keys)
}

func (c *countingBucket) removeCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removes
}

type fixture struct {
	store  *store.Store
	assets *storage.SQLiteBucket
	tables *countingTables
	bucket *countingBucket
	images *imageServer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testhelpers.NewMigratedDB(t)
	st := store.New(db)
	tables := &countingTables{TableStore: st.Tables}
	st.Tables = tables
	assets := storage.NewSQLiteBucket(db, "assets", "http://localhost:8080")

	return &fixture{
		store:  st,
		assets: assets,
		tables: tables,
		bucket: &countingBucket{Bucket: assets},
		images: newImageServer(t),
	}
}

func (f *fixture) seeder(opts ...seed.Option) *seed.Seeder {
	base := []seed.Option{
		seed.WithHTTPClient(f.images.Client()),
		seed.WithLogger(slog.New(slog.DiscardHandler)),
	}
	return seed.New(f.store, f.bucket, append(base, opts...)...)
}

func (f *fixture) image(name string) string {
	return f.images.URL + "/images/" + name
}

// pizzaDataset is the single-category, single-item dataset.
func (f *fixture) pizzaDataset() *seed.Dataset {
	return &seed.Dataset{
		Categories: []seed.CategorySeed{{Name: "Pizza", Description: "Stone baked"}},
		Customizations: []seed.CustomizationSeed{
			{Name: "Extra Cheese", Price: decimal.RequireFromString("1.5"), Type: store.CustomizationTopping},
		},
		Menu: []seed.MenuItemSeed{{
			Name:           "Margherita",
			Description:    "Tomato and mozzarella",
			ImageURL:       f.image("margherita.png"),
			Price:          decimal.RequireFromString("9.99"),
			Rating:         4.5,
			Calories:       800,
			Protein:        30,
			CategoryName:   "Pizza",
			Customizations: []string{"Extra Cheese"},
		}},
	}
}

// fullDataset has several categories, items and fan-out links.
func (f *fixture) fullDataset() *seed.Dataset {
	price := decimal.RequireFromString
	return &seed.Dataset{
		Categories: []seed.CategorySeed{
			{Name: "Pizza", Description: "Stone baked"},
			{Name: "Burgers", Description: "Grilled"},
		},
		Customizations: []seed.CustomizationSeed{
			{Name: "Extra Cheese", Price: price("1.5"), Type: store.CustomizationTopping},
			{Name: "Fries", Price: price("2"), Type: store.CustomizationSide},
			{Name: "Thin Crust", Price: price("0"), Type: store.CustomizationCrust},
		},
		Menu: []seed.MenuItemSeed{
			{Name: "Margherita", ImageURL: f.image("margherita.png"), Price: price("9.99"), CategoryName: "Pizza", Customizations: []string{"Extra Cheese", "Thin Crust"}},
			{Name: "Pepperoni", ImageURL: f.image("pepperoni.png"), Price: price("11.5"), CategoryName: "Pizza", Customizations: []string{"Extra Cheese"}},
			{Name: "Cheeseburger", ImageURL: f.image("cheeseburger.png"), Price: price("8.25"), CategoryName: "Burgers", Customizations: []string{"Extra Cheese", "Fries"}},
			{Name: "Veggie Burger", ImageURL: f.image("veggie.png"), Price: price("7.75"), CategoryName: "Burgers"},
			{Name: "Calzone", ImageURL: f.image("calzone.png"), Price: price("10"), CategoryName: "Pizza", Customizations: []string{"Fries"}},
			{Name: "Double Burger", ImageURL: f.image("double.png"), Price: price("12.5"), CategoryName: "Burgers", Customizations: []string{"Fries", "Extra Cheese"}},
		},
	}
}

func (f *fixture) countRows(t *testing.T, table string) int {
	t.Helper()
	ids, err := f.store.Tables.SelectIDs(context.Background(), table)
	if err != nil {
		t.Fatalf("select %s: %v", table, err)
	}
	return len(ids)
}

func (f *fixture) keys(t *testing.T) []string {
	t.Helper()
	keys, err := f.assets.List(context.Background())
	if err != nil {
		t.Fatalf("list bucket: %v", err)
	}
	return keys
}
