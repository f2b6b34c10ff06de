package seed

import (
	"fmt"
)

// QueryError reports a failed read from the tables or the bucket.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string { return fmt.Sprintf("query %s: %v", e.Op, e.Err) }

func (e *QueryError) Unwrap() error { return e.Err }

// PersistenceError reports a failed insert or delete, including a
// single-row insert that returned no row.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("persist %s: %v", e.Op, e.Err) }

func (e *PersistenceError) Unwrap() error { return e.Err }

// IngestionError reports a failed image fetch or upload.
type IngestionError struct {
	URL string
	Err error
}

func (e *IngestionError) Error() string { return fmt.Sprintf("ingest image %s: %v", e.URL, e.Err) }

func (e *IngestionError) Unwrap() error { return e.Err }

// Reference kinds carried by ReferentialGapError.
const (
	RefCategory      = "category"
	RefCustomization = "customization"
)

// ReferentialGapError reports a menu item that names a category or
// customization absent from the dataset.
type ReferentialGapError struct {
	Kind string // RefCategory or RefCustomization
	Item string // menu item name
	Name string // the unresolved name
}

func (e *ReferentialGapError) Error() string {
	return fmt.Sprintf("menu item %q references unknown %s %q", e.Item, e.Kind, e.Name)
}

// ReferencePolicy decides what happens when a menu item references an
// unknown category or customization.
type ReferencePolicy string

const (
	// ReferenceFail aborts the run with a ReferentialGapError.
	ReferenceFail ReferencePolicy = "fail"
	// ReferenceSkip skips the menu item (unknown category) or the single
	// junction row (unknown customization) and logs a warning.
	ReferenceSkip ReferencePolicy = "skip"
)

// ParseReferencePolicy converts s to a ReferencePolicy.
func ParseReferencePolicy(s string) (ReferencePolicy, error) {
	switch p := ReferencePolicy(s); p {
	case ReferenceFail, ReferenceSkip:
		return p, nil
	case "":
		return ReferenceFail, nil
	default:
		return "", fmt.Errorf("invalid reference policy %q (must be fail or skip)", s)
	}
}
