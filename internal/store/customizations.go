package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// CustomizationType is the kind of add-on a customization represents.
type CustomizationType string

// Customization types accepted by the customizations table.
const (
	CustomizationTopping CustomizationType = "topping"
	CustomizationSide    CustomizationType = "side"
	CustomizationSize    CustomizationType = "size"
	CustomizationCrust   CustomizationType = "crust"
	CustomizationBread   CustomizationType = "bread"
	CustomizationSpice   CustomizationType = "spice"
	CustomizationBase    CustomizationType = "base"
	CustomizationSauce   CustomizationType = "sauce"
)

// Valid reports whether t is one of the known customization types.
func (t CustomizationType) Valid() bool {
	switch t {
	case CustomizationTopping, CustomizationSide, CustomizationSize, CustomizationCrust,
		CustomizationBread, CustomizationSpice, CustomizationBase, CustomizationSauce:
		return true
	}
	return false
}

// Customization is a row of the customizations table.
type Customization struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Price     decimal.Decimal   `json:"price"`
	Type      CustomizationType `json:"type"`
	CreatedAt string            `json:"created_at"`
}

// CustomizationStore defines the interface for customization persistence.
type CustomizationStore interface {
	Create(ctx context.Context, name string, price decimal.Decimal, typ CustomizationType) (*Customization, error)
	List(ctx context.Context) ([]*Customization, error)
}

// SQLiteCustomizationStore implements CustomizationStore backed by SQLite.
type SQLiteCustomizationStore struct {
	db *sql.DB
}

// NewSQLiteCustomizationStore creates a new SQLiteCustomizationStore.
func NewSQLiteCustomizationStore(db *sql.DB) *SQLiteCustomizationStore {
	return &SQLiteCustomizationStore{db: db}
}

const customizationColumns = `id, name, price, type, created_at`

func scanCustomization(row scanner) (*Customization, error) {
	var c Customization
	if err := row.Scan(&c.ID, &c.Name, &c.Price, &c.Type, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a customization and returns the stored row.
func (s *SQLiteCustomizationStore) Create(ctx context.Context, name string, price decimal.Decimal, typ CustomizationType) (*Customization, error) {
	c, err := scanCustomization(s.db.QueryRowContext(ctx,
		`INSERT INTO customizations (id, name, price, type, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING `+customizationColumns,
		newID(), name, price.String(), string(typ), now(),
	))
	if err != nil {
		return nil, insertErr("customization", err)
	}
	return c, nil
}

// List returns all customizations in insertion order.
func (s *SQLiteCustomizationStore) List(ctx context.Context) ([]*Customization, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+customizationColumns+` FROM customizations ORDER BY created_at, rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("list customizations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []*Customization{}
	for rows.Next() {
		c, err := scanCustomization(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customization: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}
