package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// now returns the current UTC time formatted as a row timestamp.
func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// newID returns a fresh row identifier.
func newID() string {
	return uuid.NewString()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// insertErr maps the error of a single-row INSERT ... RETURNING.
func insertErr(what string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("insert %s: %w", what, ErrNoRow)
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("insert %s: %w", what, ErrConflict)
	}
	return fmt.Errorf("insert %s: %w", what, err)
}

// likePattern builds a case-insensitive substring pattern for
// `unicode_lower(col) LIKE ? ESCAPE '\'`.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(q)) + "%"
}
