package store

import (
	"context"
	"database/sql"
	"fmt"
)

// MenuCustomization is a row of the menu_customizations junction table.
type MenuCustomization struct {
	ID              string `json:"id"`
	MenuID          string `json:"menu_id"`
	CustomizationID string `json:"customization_id"`
	CreatedAt       string `json:"created_at"`
}

// MenuCustomizationStore defines the interface for junction row persistence.
type MenuCustomizationStore interface {
	Create(ctx context.Context, menuID, customizationID string) (*MenuCustomization, error)
	ListByMenu(ctx context.Context, menuID string) ([]*MenuCustomization, error)
}

// SQLiteMenuCustomizationStore implements MenuCustomizationStore backed by SQLite.
type SQLiteMenuCustomizationStore struct {
	db *sql.DB
}

// NewSQLiteMenuCustomizationStore creates a new SQLiteMenuCustomizationStore.
func NewSQLiteMenuCustomizationStore(db *sql.DB) *SQLiteMenuCustomizationStore {
	return &SQLiteMenuCustomizationStore{db: db}
}

// Create links a menu item to a customization.
func (s *SQLiteMenuCustomizationStore) Create(ctx context.Context, menuID, customizationID string) (*MenuCustomization, error) {
	var mc MenuCustomization
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO menu_customizations (id, menu_id, customization_id, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING id, menu_id, customization_id, created_at`,
		newID(), menuID, customizationID, now(),
	).Scan(&mc.ID, &mc.MenuID, &mc.CustomizationID, &mc.CreatedAt)
	if err != nil {
		return nil, insertErr("menu customization", err)
	}
	return &mc, nil
}

// ListByMenu returns the junction rows of one menu item.
func (s *SQLiteMenuCustomizationStore) ListByMenu(ctx context.Context, menuID string) ([]*MenuCustomization, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, menu_id, customization_id, created_at
		 FROM menu_customizations WHERE menu_id = ? ORDER BY created_at, rowid`,
		menuID,
	)
	if err != nil {
		return nil, fmt.Errorf("list menu customizations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []*MenuCustomization{}
	for rows.Next() {
		var mc MenuCustomization
		if err := rows.Scan(&mc.ID, &mc.MenuID, &mc.CustomizationID, &mc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan menu customization: %w", err)
		}
		out = append(out, &mc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}
