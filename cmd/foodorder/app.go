package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/johnwards/foodorder/internal/auth"
	"github.com/johnwards/foodorder/internal/config"
	"github.com/johnwards/foodorder/internal/database"
	"github.com/johnwards/foodorder/internal/seed"
	"github.com/johnwards/foodorder/internal/server"
	"github.com/johnwards/foodorder/internal/storage"
	"github.com/johnwards/foodorder/internal/store"
)

// app holds the wired collaborators shared by all commands.
type app struct {
	cfg    config.Config
	db     *sql.DB
	store  *store.Store
	bucket storage.Bucket
	assets *storage.SQLiteBucket // nil unless Storage == "sqlite"
	seeder *seed.Seeder
	auth   *auth.Service
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	db, err := database.OpenMigrated(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, db: db, store: store.New(db)}

	switch cfg.Storage {
	case "s3":
		b, err := storage.NewS3Bucket(ctx, storage.S3Options{
			Bucket:    cfg.Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PublicURL: cfg.PublicURL, // empty selects the bucket's own URL
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("open s3 bucket: %w", err)
		}
		a.bucket = b
	default:
		a.assets = storage.NewSQLiteBucket(db, cfg.Bucket, cfg.ServerURL())
		a.bucket = a.assets
	}

	policy, err := seed.ParseReferencePolicy(cfg.Seed.ReferencePolicy)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a.seeder = seed.New(a.store, a.bucket,
		seed.WithHTTPClient(&http.Client{Timeout: cfg.Seed.FetchTimeout}),
		seed.WithLogger(slog.Default()),
		seed.WithReferencePolicy(policy),
		seed.WithConcurrency(cfg.Seed.Concurrency),
	)
	a.auth = auth.NewService(a.store.Profiles, auth.NewSessions(cfg.JWTSecret, cfg.SessionTTL))

	return a, nil
}

// dataset loads the configured dataset file, or the embedded one.
func (a *app) dataset() (*seed.Dataset, error) {
	if a.cfg.Seed.DatasetPath != "" {
		return seed.LoadFile(a.cfg.Seed.DatasetPath)
	}
	return seed.Default()
}

func (a *app) handler() http.Handler {
	return server.New(server.Deps{
		Store:     a.store,
		Auth:      a.auth,
		Seeder:    a.seeder,
		Dataset:   a.dataset,
		AuthToken: a.cfg.AuthToken,
		Assets:    a.assets,
	})
}

func (a *app) seed(ctx context.Context) (*seed.Report, error) {
	ds, err := a.dataset()
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	rep, err := a.seeder.Run(ctx, ds)
	if err != nil {
		return rep, fmt.Errorf("seed: %w", err)
	}
	return rep, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
