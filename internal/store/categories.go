package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Category is a row of the categories table.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// CategoryStore defines the interface for category persistence.
type CategoryStore interface {
	Create(ctx context.Context, name, description string) (*Category, error)
	Get(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
}

// SQLiteCategoryStore implements CategoryStore backed by SQLite.
type SQLiteCategoryStore struct {
	db *sql.DB
}

// NewSQLiteCategoryStore creates a new SQLiteCategoryStore.
func NewSQLiteCategoryStore(db *sql.DB) *SQLiteCategoryStore {
	return &SQLiteCategoryStore{db: db}
}

const categoryColumns = `id, name, description, created_at`

func scanCategory(row scanner) (*Category, error) {
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a category and returns the stored row.
func (s *SQLiteCategoryStore) Create(ctx context.Context, name, description string) (*Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx,
		`INSERT INTO categories (id, name, description, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING `+categoryColumns,
		newID(), name, description, now(),
	))
	if err != nil {
		return nil, insertErr("category", err)
	}
	return c, nil
}

// Get retrieves a single category by id.
func (s *SQLiteCategoryStore) Get(ctx context.Context, id string) (*Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// List returns all categories in insertion order.
func (s *SQLiteCategoryStore) List(ctx context.Context) ([]*Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY created_at, rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []*Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return categories, nil
}
