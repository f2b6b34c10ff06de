package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// PublicPathPrefix is the HTTP path under which SQLite buckets are served.
const PublicPathPrefix = "/storage/v1/object/public/"

// SQLiteBucket implements Bucket on the assets table.
type SQLiteBucket struct {
	db      *sql.DB
	name    string
	baseURL string
}

var _ Bucket = (*SQLiteBucket)(nil)

// NewSQLiteBucket creates a bucket named name whose public URLs are rooted at
// baseURL (scheme and host of the serving HTTP API).
func NewSQLiteBucket(db *sql.DB, name, baseURL string) *SQLiteBucket {
	return &SQLiteBucket{db: db, name: name, baseURL: strings.TrimRight(baseURL, "/")}
}

// Name returns the bucket name.
func (b *SQLiteBucket) Name() string { return b.name }

// List returns every key in the bucket in lexical order.
func (b *SQLiteBucket) List(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx,
		`SELECT key FROM assets WHERE bucket = ? ORDER BY key`, b.name,
	)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return keys, nil
}

// Upload stores data under key.
func (b *SQLiteBucket) Upload(ctx context.Context, key string, data []byte, contentType string, overwrite bool) (string, error) {
	if key == "" {
		return "", fmt.Errorf("upload object: empty key")
	}

	ts := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	query := `INSERT INTO assets (bucket, key, content_type, size, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if overwrite {
		query += ` ON CONFLICT (bucket, key) DO UPDATE SET
			content_type = excluded.content_type,
			size = excluded.size,
			data = excluded.data,
			updated_at = excluded.updated_at`
	}

	_, err := b.db.ExecContext(ctx, query, b.name, key, contentType, len(data), data, ts, ts)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return "", fmt.Errorf("upload %s: %w", key, ErrExists)
		}
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// Remove deletes keys from the bucket in a single statement.
func (b *SQLiteBucket) Remove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	args := make([]any, 0, len(keys)+1)
	args = append(args, b.name)
	for _, k := range keys {
		args = append(args, k)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")

	if _, err := b.db.ExecContext(ctx,
		`DELETE FROM assets WHERE bucket = ? AND key IN (`+placeholders+`)`, args...,
	); err != nil {
		return fmt.Errorf("remove objects: %w", err)
	}
	return nil
}

// Get returns the object stored under key.
func (b *SQLiteBucket) Get(ctx context.Context, key string) (*Object, error) {
	o := Object{Bucket: b.name, Key: key}
	err := b.db.QueryRowContext(ctx,
		`SELECT content_type, size, data, updated_at FROM assets WHERE bucket = ? AND key = ?`,
		b.name, key,
	).Scan(&o.ContentType, &o.Size, &o.Data, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get object: %w", err)
	}
	return &o, nil
}

// PublicURL returns baseURL + /storage/v1/object/public/<bucket>/<path>.
func (b *SQLiteBucket) PublicURL(path string) string {
	return b.baseURL + PublicPathPrefix + url.PathEscape(b.name) + "/" + escapePath(path)
}

func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
