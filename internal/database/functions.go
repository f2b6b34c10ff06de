package database

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"modernc.org/sqlite"
)

// UnicodeLower is the SQL name of a lower() that folds the full Unicode
// range. SQLite's built-in LOWER only folds ASCII, so "CRÈME" would not
// match a Go-lowercased "crème".
const UnicodeLower = "unicode_lower"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(UnicodeLower, 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("register %s: %v", UnicodeLower, err))
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
