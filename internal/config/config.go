package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr      string // FOODORDER_ADDR, default ":8080"
	DBPath    string // FOODORDER_DB, default "foodorder.db"
	AuthToken string // FOODORDER_AUTH_TOKEN, optional; guards /_admin routes
	LogLevel  string // FOODORDER_LOG_LEVEL, default "info"

	JWTSecret  string        // FOODORDER_JWT_SECRET, default "dev-secret"
	SessionTTL time.Duration // FOODORDER_SESSION_TTL, default 72h

	Storage    string // FOODORDER_STORAGE, "sqlite" or "s3"
	Bucket     string // FOODORDER_BUCKET, default "assets"
	PublicURL  string // FOODORDER_PUBLIC_URL, base for public asset URLs; empty means derived
	S3Region   string // FOODORDER_S3_REGION, falls back to AWS_REGION
	S3Endpoint string // FOODORDER_S3_ENDPOINT, optional (MinIO, localstack)

	Seed SeedConfig

	// parseErrs records variables that were set but could not be parsed.
	parseErrs []error
}

// SeedConfig holds settings for the seed pipeline.
type SeedConfig struct {
	DatasetPath     string        // FOODORDER_DATASET, empty means the embedded dataset
	Concurrency     int           // FOODORDER_SEED_CONCURRENCY, default 1
	ReferencePolicy string        // FOODORDER_REFERENCE_POLICY, "fail" or "skip"
	FetchTimeout    time.Duration // FOODORDER_FETCH_TIMEOUT, default 30s
	OnStart         bool          // FOODORDER_SEED_ON_START, default false
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
func Load() Config {
	_ = godotenv.Load()

	var p parser
	cfg := Config{
		Addr:       envOr("FOODORDER_ADDR", ":8080"),
		DBPath:     envOr("FOODORDER_DB", "foodorder.db"),
		AuthToken:  os.Getenv("FOODORDER_AUTH_TOKEN"),
		LogLevel:   envOr("FOODORDER_LOG_LEVEL", "info"),
		JWTSecret:  envOr("FOODORDER_JWT_SECRET", "dev-secret"),
		SessionTTL: p.duration("FOODORDER_SESSION_TTL", 72*time.Hour),
		Storage:    envOr("FOODORDER_STORAGE", "sqlite"),
		Bucket:     envOr("FOODORDER_BUCKET", "assets"),
		PublicURL:  strings.TrimRight(os.Getenv("FOODORDER_PUBLIC_URL"), "/"),
		S3Region:   envOr("FOODORDER_S3_REGION", os.Getenv("AWS_REGION")),
		S3Endpoint: os.Getenv("FOODORDER_S3_ENDPOINT"),
		Seed: SeedConfig{
			DatasetPath:     os.Getenv("FOODORDER_DATASET"),
			Concurrency:     p.int("FOODORDER_SEED_CONCURRENCY", 1),
			ReferencePolicy: envOr("FOODORDER_REFERENCE_POLICY", "fail"),
			FetchTimeout:    p.duration("FOODORDER_FETCH_TIMEOUT", 30*time.Second),
			OnStart:         p.bool("FOODORDER_SEED_ON_START", false),
		},
	}
	cfg.parseErrs = p.errs
	return cfg
}

// Validate reports unparsable variables and settings outside their allowed
// values.
func (c Config) Validate() error {
	if len(c.parseErrs) > 0 {
		return errors.Join(c.parseErrs...)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", c.LogLevel)
	}

	switch c.Storage {
	case "sqlite", "s3":
	default:
		return fmt.Errorf("invalid storage driver %q (must be sqlite or s3)", c.Storage)
	}

	if c.Bucket == "" {
		return fmt.Errorf("bucket name is required")
	}

	switch c.Seed.ReferencePolicy {
	case "fail", "skip":
	default:
		return fmt.Errorf("invalid reference policy %q (must be fail or skip)", c.Seed.ReferencePolicy)
	}

	if c.Seed.Concurrency < 1 {
		return fmt.Errorf("seed concurrency must be at least 1, got %d", c.Seed.Concurrency)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %s", c.SessionTTL)
	}

	if c.Seed.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.Seed.FetchTimeout)
	}

	return nil
}

// ServerURL returns the base URL under which this server's own routes are
// reachable: PublicURL when set, otherwise http://localhost on the port of
// Addr.
func (c Config) ServerURL() string {
	if c.PublicURL != "" {
		return c.PublicURL
	}
	host, port, err := net.SplitHostPort(c.Addr)
	if err != nil || port == "" {
		return "http://localhost:8080"
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parser reads typed variables, keeping the fallback for unset ones and
// recording an error for malformed ones.
type parser struct {
	errs []error
}

func (p *parser) int(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid integer %q", key, raw))
		return fallback
	}
	return v
}

func (p *parser) bool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid boolean %q", key, raw))
		return fallback
	}
	return v
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return fallback
	}
	return v
}
