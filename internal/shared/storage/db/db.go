package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"resume-builder/internal/shared/telemetry"
)

// Options controls database pool and connectivity behavior.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// Profile names the kind of process that owns the pool.
type Profile string

const (
	ProfileServer Profile = "server"
	ProfileLambda Profile = "lambda"
	ProfileCLI    Profile = "cli"
)

var (
	openDB      = sql.Open
	singletonMu sync.Mutex
	singletonDB *sql.DB
)

// IsLambdaRuntime reports whether the current process is running in AWS Lambda.
func IsLambdaRuntime() bool {
	return strings.TrimSpace(os.Getenv("AWS_LAMBDA_FUNCTION_NAME")) != ""
}

// RuntimeProfile picks ProfileLambda inside Lambda and ProfileServer elsewhere.
func RuntimeProfile() Profile {
	if IsLambdaRuntime() {
		return ProfileLambda
	}
	return ProfileServer
}

// DefaultOptions returns pool defaults for p. Lambda keeps a tiny pool per
// warm container; the CLI needs one connection.
func DefaultOptions(p Profile) Options {
	switch p {
	case ProfileLambda:
		return Options{
			MaxOpenConns:    2,
			MaxIdleConns:    1,
			ConnMaxIdleTime: 30 * time.Second,
			ConnMaxLifetime: 15 * time.Minute,
			PingTimeout:     3 * time.Second,
		}
	case ProfileCLI:
		return Options{
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxIdleTime: 2 * time.Minute,
			ConnMaxLifetime: time.Hour,
			PingTimeout:     5 * time.Second,
		}
	default:
		return Options{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxIdleTime: 2 * time.Minute,
			ConnMaxLifetime: time.Hour,
			PingTimeout:     5 * time.Second,
		}
	}
}

// OptionsFromEnv overrides defaults with DB_* environment variables.
func OptionsFromEnv(defaults Options) Options {
	return OptionsFromLookup(defaults, os.Getenv)
}

// OptionsFromLookup overrides defaults with DB_* keys returned by lookup.
// Unparsable values are logged and ignored.
func OptionsFromLookup(defaults Options, lookup func(string) string) Options {
	opts := defaults
	ints := []struct {
		key string
		dst *int
	}{
		{"DB_MAX_OPEN_CONNS", &opts.MaxOpenConns},
		{"DB_MAX_IDLE_CONNS", &opts.MaxIdleConns},
	}
	for _, f := range ints {
		raw := strings.TrimSpace(lookup(f.key))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			telemetry.Warn("db.env.invalid", map[string]any{"key": f.key, "err": err})
			continue
		}
		*f.dst = v
	}
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"DB_CONN_MAX_LIFETIME", &opts.ConnMaxLifetime},
		{"DB_CONN_MAX_IDLE_TIME", &opts.ConnMaxIdleTime},
		{"DB_PING_TIMEOUT", &opts.PingTimeout},
	}
	for _, f := range durations {
		raw := strings.TrimSpace(lookup(f.key))
		if raw == "" {
			continue
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			telemetry.Warn("db.env.invalid", map[string]any{"key": f.key, "err": err})
			continue
		}
		*f.dst = v
	}
	return opts
}

// Connect opens a Postgres *sql.DB for DATABASE_URL and verifies connectivity.
// The returned *sql.DB should be shared and re-used by callers.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	applyOptions(db, opts)

	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logPoolStats(db, "db.init")
	return db, nil
}

// GetSingleton returns a process-wide *sql.DB, connecting on first use.
// Concurrent callers wait for the same attempt; a failed attempt is retried by
// the next call.
func GetSingleton(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	singletonMu.Lock()
	defer singletonMu.Unlock()
	if singletonDB != nil {
		return singletonDB, nil
	}
	db, err := Connect(ctx, databaseURL, opts)
	if err != nil {
		return nil, err
	}
	singletonDB = db
	telemetry.Info("db.singleton.init", nil)
	return db, nil
}

// applyOptions fills unset limits from the server profile.
func applyOptions(db *sql.DB, opts Options) {
	def := DefaultOptions(ProfileServer)
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = def.MaxOpenConns
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = def.MaxIdleConns
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = def.ConnMaxLifetime
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
}

func logPoolStats(db *sql.DB, label string) {
	stats := db.Stats()
	telemetry.Info(label, map[string]any{
		"open":     stats.OpenConnections,
		"in_use":   stats.InUse,
		"idle":     stats.Idle,
		"wait":     stats.WaitCount,
		"max_open": stats.MaxOpenConnections,
	})
}
