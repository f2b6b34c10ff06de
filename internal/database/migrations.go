package database

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice.
var migrations = [][]string{
	// Migration 1: menu catalog
	{
		`CREATE TABLE categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,

		`CREATE TABLE customizations (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			price TEXT NOT NULL DEFAULT '0',
			type TEXT NOT NULL CHECK (type IN ('topping', 'side', 'size', 'crust', 'bread', 'spice', 'base', 'sauce')),
			created_at TEXT NOT NULL
		)`,

		`CREATE TABLE menus (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '0',
			rating REAL NOT NULL DEFAULT 0,
			calories INTEGER NOT NULL DEFAULT 0,
			proteins INTEGER NOT NULL DEFAULT 0,
			category_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (category_id) REFERENCES categories(id)
		)`,
		`CREATE INDEX idx_menus_category ON menus(category_id)`,

		`CREATE TABLE menu_customizations (
			id TEXT PRIMARY KEY,
			menu_id TEXT NOT NULL,
			customization_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (menu_id) REFERENCES menus(id),
			FOREIGN KEY (customization_id) REFERENCES customizations(id)
		)`,
		`CREATE INDEX idx_menu_customizations_menu ON menu_customizations(menu_id)`,
	},

	// Migration 2: auth profiles and the local object storage bucket
	{
		`CREATE TABLE profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,

		`CREATE TABLE assets (
			bucket TEXT NOT NULL,
			key TEXT NOT NULL,
			content_type TEXT NOT NULL DEFAULT 'application/octet-stream',
			size INTEGER NOT NULL DEFAULT 0,
			data BLOB NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (bucket, key)
		)`,
	},
}
