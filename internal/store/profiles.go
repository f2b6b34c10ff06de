package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Profile is the public shape of an application user.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"created_at"`
}

// ProfileStore defines the interface for profile persistence.
type ProfileStore interface {
	Create(ctx context.Context, name, email, avatar, passwordHash string) (*Profile, error)
	Get(ctx context.Context, id string) (*Profile, error)
	// Credentials returns the profile registered under email together with
	// its password hash.
	Credentials(ctx context.Context, email string) (*Profile, string, error)
}

// SQLiteProfileStore implements ProfileStore backed by SQLite.
type SQLiteProfileStore struct {
	db *sql.DB
}

// NewSQLiteProfileStore creates a new SQLiteProfileStore.
func NewSQLiteProfileStore(db *sql.DB) *SQLiteProfileStore {
	return &SQLiteProfileStore{db: db}
}

// Create inserts a new profile. A duplicate email yields ErrConflict.
func (s *SQLiteProfileStore) Create(ctx context.Context, name, email, avatar, passwordHash string) (*Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO profiles (id, name, email, avatar, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING id, name, email, avatar, created_at`,
		newID(), name, email, avatar, passwordHash, now(),
	).Scan(&p.ID, &p.Name, &p.Email, &p.Avatar, &p.CreatedAt)
	if err != nil {
		return nil, insertErr("profile", err)
	}
	return &p, nil
}

// Get retrieves a profile by id.
func (s *SQLiteProfileStore) Get(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, avatar, created_at FROM profiles WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Email, &p.Avatar, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Credentials looks a profile up by email.
func (s *SQLiteProfileStore) Credentials(ctx context.Context, email string) (*Profile, string, error) {
	var p Profile
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, avatar, created_at, password_hash FROM profiles WHERE email = ?`, email,
	).Scan(&p.ID, &p.Name, &p.Email, &p.Avatar, &p.CreatedAt, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("get credentials: %w", err)
	}
	return &p, hash, nil
}
