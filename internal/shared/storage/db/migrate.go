package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var postgresMigrations embed.FS

//go:embed migrations_sqlite/*.sql
var sqliteMigrations embed.FS

// RunMigrations applies the embedded Postgres migrations via goose. If database is nil, it's a no-op.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	return runGoose(ctx, database, postgresMigrations, "postgres", "migrations")
}

// RunSQLiteMigrations applies the embedded SQLite migrations.
func RunSQLiteMigrations(ctx context.Context, database *sql.DB) error {
	return runGoose(ctx, database, sqliteMigrations, "sqlite3", "migrations_sqlite")
}

// goose keeps its base FS and dialect in package state.
func runGoose(ctx context.Context, database *sql.DB, fsys embed.FS, dialect, dir string) error {
	if database == nil {
		return nil
	}
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, database, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}
	return nil
}
