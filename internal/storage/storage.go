// Package storage provides the object buckets that hold seeded menu images.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an object key does not exist in the bucket.
var ErrNotFound = errors.New("object not found")

// ErrExists is returned by Upload without overwrite when the key is taken.
var ErrExists = errors.New("object already exists")

// Bucket is a flat object store addressed by key.
type Bucket interface {
	// Name returns the bucket name.
	Name() string
	// List returns every key in the bucket.
	List(ctx context.Context) ([]string, error)
	// Upload stores data under key and returns the stored object path.
	// With overwrite set an existing object is replaced; otherwise ErrExists
	// is returned.
	Upload(ctx context.Context, key string, data []byte, contentType string, overwrite bool) (string, error)
	// Remove deletes the given keys in one call. Missing keys are ignored.
	Remove(ctx context.Context, keys []string) error
	// PublicURL returns the URL under which path is publicly retrievable.
	PublicURL(path string) string
}

// Object is a stored asset together with its bytes.
type Object struct {
	Bucket      string
	Key         string
	ContentType string
	Size        int64
	Data        []byte
	UpdatedAt   string
}
