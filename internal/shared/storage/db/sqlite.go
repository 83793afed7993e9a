package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // register sqlite as database/sql driver
)

var gooseMu sync.Mutex

// SQLiteFileName is the database file created inside the data directory.
const SQLiteFileName = "resume.db"

// OpenSQLite opens (creating if needed) the single-device database in dir and
// applies migrations. WAL mode lets readers proceed during a write.
func OpenSQLite(ctx context.Context, dir string) (*sql.DB, error) {
	if dir == "" {
		return nil, fmt.Errorf("SQLITE_DIR is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	path := filepath.Join(dir, SQLiteFileName)
	database, err := openDB("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers; SQLite allows only one at a time.
	database.SetMaxOpenConns(1)
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := RunSQLiteMigrations(ctx, database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
