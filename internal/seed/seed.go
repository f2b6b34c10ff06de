// Package seed tears down and repopulates the catalog tables and the asset
// bucket from a static dataset.
package seed

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/johnwards/foodorder/internal/storage"
	"github.com/johnwards/foodorder/internal/store"
)

// Seeder runs seed runs against one store and one bucket.
type Seeder struct {
	store       *store.Store
	bucket      storage.Bucket
	client      *http.Client
	logger      *slog.Logger
	policy      ReferencePolicy
	concurrency int
	now         func() time.Time
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithHTTPClient sets the client used to fetch source images.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Seeder) { s.client = c }
}

// WithLogger sets the logger for run progress.
func WithLogger(l *slog.Logger) Option {
	return func(s *Seeder) { s.logger = l }
}

// WithReferencePolicy sets how unknown category and customization names in
// menu items are handled. The default is ReferenceFail.
func WithReferencePolicy(p ReferencePolicy) Option {
	return func(s *Seeder) { s.policy = p }
}

// WithConcurrency sets how many images are ingested in parallel. Values
// below 2 keep ingestion sequential, one item at a time.
func WithConcurrency(n int) Option {
	return func(s *Seeder) { s.concurrency = n }
}

// New creates a Seeder.
func New(st *store.Store, bucket storage.Bucket, opts ...Option) *Seeder {
	s := &Seeder{
		store:       st,
		bucket:      bucket,
		client:      &http.Client{Timeout: 30 * time.Second},
		logger:      slog.Default(),
		policy:      ReferenceFail,
		concurrency: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Report summarises a seed run.
type Report struct {
	Reset                 *ResetReport `json:"reset"`
	Categories            int          `json:"categories"`
	Customizations        int          `json:"customizations"`
	Menus                 int          `json:"menus"`
	MenuCustomizations    int          `json:"menu_customizations"`
	Assets                int          `json:"assets"`
	SkippedMenus          []string     `json:"skipped_menus"`
	SkippedCustomizations int          `json:"skipped_customizations"`
	Duration              string       `json:"duration"`
}

// Run performs one seed run: Reset, then population of categories,
// customizations, menu items and junction rows, in that order. A failure
// aborts the run and leaves earlier writes in place.
func (s *Seeder) Run(ctx context.Context, ds *Dataset) (*Report, error) {
	start := s.now()

	if s.policy == ReferenceFail {
		if err := ds.CheckReferences(); err != nil {
			return nil, err
		}
	}

	s.logger.Info("seed started",
		"categories", len(ds.Categories),
		"customizations", len(ds.Customizations),
		"menu", len(ds.Menu),
		"policy", string(s.policy),
		"concurrency", s.concurrency,
	)

	reset, err := s.Reset(ctx)
	if err != nil {
		return nil, err
	}

	rep := &Report{Reset: reset, SkippedMenus: []string{}}
	if err := s.populate(ctx, ds, NewResolver(), rep); err != nil {
		return rep, err
	}

	rep.Duration = s.now().Sub(start).Round(time.Millisecond).String()
	s.logger.Info("seed complete",
		"categories", rep.Categories,
		"customizations", rep.Customizations,
		"menus", rep.Menus,
		"menu_customizations", rep.MenuCustomizations,
		"assets", rep.Assets,
		"duration", rep.Duration,
	)
	return rep, nil
}
