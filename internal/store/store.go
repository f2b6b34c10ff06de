package store

import "database/sql"

// Store holds all sub-stores used by the application.
type Store struct {
	Tables             TableStore
	Categories         CategoryStore
	Customizations     CustomizationStore
	Menus              MenuStore
	MenuCustomizations MenuCustomizationStore
	Profiles           ProfileStore
}

// New creates a Store with all sub-stores initialized.
func New(db *sql.DB) *Store {
	return &Store{
		Tables:             NewSQLiteTableStore(db),
		Categories:         NewSQLiteCategoryStore(db),
		Customizations:     NewSQLiteCustomizationStore(db),
		Menus:              NewSQLiteMenuStore(db),
		MenuCustomizations: NewSQLiteMenuCustomizationStore(db),
		Profiles:           NewSQLiteProfileStore(db),
	}
}
