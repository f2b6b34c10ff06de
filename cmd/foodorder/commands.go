package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnwards/foodorder/internal/config"
	"github.com/johnwards/foodorder/internal/database"
	"github.com/johnwards/foodorder/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:           "foodorder",
		Short:         "Food ordering catalog API and seeder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg = config.Load()
			slog.SetDefault(logger.New(cfg.LogLevel))
			return nil
		},
	}

	root.AddCommand(
		newServeCmd(&cfg),
		newSeedCmd(&cfg),
		newResetCmd(&cfg),
		newMigrateCmd(&cfg),
	)
	return root
}

// withApp validates cfg, wires the app and closes it after fn returns.
func withApp(ctx context.Context, cfg config.Config, fn func(*app) error) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(a)
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, *cfg, func(a *app) error {
				if cfg.Seed.OnStart {
					if _, err := a.seed(ctx); err != nil {
						return err
					}
				}
				return serve(ctx, cfg.Addr, a.handler())
			})
		},
	}
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting foodorder server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func newSeedCmd(cfg *config.Config) *cobra.Command {
	var (
		dataset     string
		concurrency int
		policy      string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Reset the catalog and populate it from the dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := *cfg
			flags := cmd.Flags()
			if flags.Changed("dataset") {
				c.Seed.DatasetPath = dataset
			}
			if flags.Changed("concurrency") {
				c.Seed.Concurrency = concurrency
			}
			if flags.Changed("reference-policy") {
				c.Seed.ReferencePolicy = policy
			}

			return withApp(cmd.Context(), c, func(a *app) error {
				rep, err := a.seed(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rep)
			})
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", "", "path to a dataset JSON file (default: embedded dataset)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "number of images ingested in parallel")
	cmd.Flags().StringVar(&policy, "reference-policy", "fail", "handling of unknown category/customization names: fail or skip")
	return cmd
}

func newResetCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all catalog rows and stored images",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), *cfg, func(a *app) error {
				rep, err := a.seeder.Reset(cmd.Context())
				if err != nil {
					return fmt.Errorf("reset: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), rep)
			})
		},
	}
}

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.OpenMigrated(cmd.Context(), cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			v, err := database.Version(cmd.Context(), db)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", v)
			return err
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
