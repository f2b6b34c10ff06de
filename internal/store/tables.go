package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Seeded table names.
const (
	TableMenuCustomizations = "menu_customizations"
	TableMenus              = "menus"
	TableCustomizations     = "customizations"
	TableCategories         = "categories"
)

// seededTables is the set of tables TableStore may address by name.
var seededTables = map[string]bool{
	TableMenuCustomizations: true,
	TableMenus:              true,
	TableCustomizations:     true,
	TableCategories:         true,
}

// TableStore provides id-based bulk access to the seeded tables.
type TableStore interface {
	// SelectIDs returns the id of every row in table.
	SelectIDs(ctx context.Context, table string) ([]string, error)
	// DeleteIDs deletes exactly the rows with the given ids in one statement
	// and returns the number of rows removed.
	DeleteIDs(ctx context.Context, table string, ids []string) (int64, error)
}

// SQLiteTableStore implements TableStore backed by SQLite.
type SQLiteTableStore struct {
	db *sql.DB
}

// NewSQLiteTableStore creates a new SQLiteTableStore.
func NewSQLiteTableStore(db *sql.DB) *SQLiteTableStore {
	return &SQLiteTableStore{db: db}
}

func checkTable(table string) error {
	if !seededTables[table] {
		return fmt.Errorf("%q: %w", table, ErrUnknownTable)
	}
	return nil
}

// SelectIDs returns the id of every row in table.
func (s *SQLiteTableStore) SelectIDs(ctx context.Context, table string) ([]string, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT id FROM %s ORDER BY rowid", table)) //nolint:gosec // table is checked against seededTables
	if err != nil {
		return nil, fmt.Errorf("select ids from %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return ids, nil
}

// DeleteIDs deletes the rows of table whose id is in ids.
func (s *SQLiteTableStore) DeleteIDs(ctx context.Context, table string, ids []string) (int64, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id IN (%s)", table, placeholders), //nolint:gosec // table is checked against seededTables
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
