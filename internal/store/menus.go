package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/johnwards/foodorder/internal/database"
)

// Menu is a row of the menus table.
type Menu struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Rating      float64         `json:"rating"`
	Calories    int             `json:"calories"`
	Proteins    int             `json:"proteins"`
	CategoryID  string          `json:"category_id"`
	CreatedAt   string          `json:"created_at"`
}

// MenuFilter narrows a menu listing. Empty fields are ignored.
type MenuFilter struct {
	CategoryID string // equality on category_id
	Query      string // case-insensitive substring match on name
}

// MenuStore defines the interface for menu persistence.
type MenuStore interface {
	Create(ctx context.Context, m *Menu) (*Menu, error)
	Get(ctx context.Context, id string) (*Menu, error)
	List(ctx context.Context, filter MenuFilter) ([]*Menu, error)
}

// SQLiteMenuStore implements MenuStore backed by SQLite.
type SQLiteMenuStore struct {
	db *sql.DB
}

// NewSQLiteMenuStore creates a new SQLiteMenuStore.
func NewSQLiteMenuStore(db *sql.DB) *SQLiteMenuStore {
	return &SQLiteMenuStore{db: db}
}

const menuColumns = `id, name, description, image_url, price, rating, calories, proteins, category_id, created_at`

func scanMenu(row scanner) (*Menu, error) {
	var m Menu
	if err := row.Scan(
		&m.ID, &m.Name, &m.Description, &m.ImageURL, &m.Price,
		&m.Rating, &m.Calories, &m.Proteins, &m.CategoryID, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a menu item and returns the stored row. The ID and CreatedAt
// fields of m are ignored; the store assigns them.
func (s *SQLiteMenuStore) Create(ctx context.Context, m *Menu) (*Menu, error) {
	out, err := scanMenu(s.db.QueryRowContext(ctx,
		`INSERT INTO menus (id, name, description, image_url, price, rating, calories, proteins, category_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+menuColumns,
		newID(), m.Name, m.Description, m.ImageURL, m.Price.String(),
		m.Rating, m.Calories, m.Proteins, m.CategoryID, now(),
	))
	if err != nil {
		return nil, insertErr("menu", err)
	}
	return out, nil
}

// Get retrieves a single menu item by id.
func (s *SQLiteMenuStore) Get(ctx context.Context, id string) (*Menu, error) {
	m, err := scanMenu(s.db.QueryRowContext(ctx,
		`SELECT `+menuColumns+` FROM menus WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get menu: %w", err)
	}
	return m, nil
}

// List returns menu items matching filter, in insertion order.
func (s *SQLiteMenuStore) List(ctx context.Context, filter MenuFilter) ([]*Menu, error) {
	query := `SELECT ` + menuColumns + ` FROM menus WHERE 1=1`
	var args []any

	if filter.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, filter.CategoryID)
	}
	if filter.Query != "" {
		query += ` AND ` + database.UnicodeLower + `(name) LIKE ? ESCAPE '\'`
		args = append(args, likePattern(filter.Query))
	}
	query += ` ORDER BY created_at, rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer func() { _ = rows.Close() }()

	menus := []*Menu{}
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return menus, nil
}
