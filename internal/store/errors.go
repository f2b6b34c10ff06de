package store

import "errors"

// ErrNotFound is returned when a row lookup by id matches nothing.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique constraint is violated.
var ErrConflict = errors.New("conflict")

// ErrNoRow is returned when a single-row insert does not hand the stored row back.
var ErrNoRow = errors.New("insert returned no row")

// ErrUnknownTable is returned by TableStore for table names outside the seeded set.
var ErrUnknownTable = errors.New("unknown table")
