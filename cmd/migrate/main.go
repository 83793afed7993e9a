package main

// Run database migrations:
//   go run ./cmd/migrate
//   STORE=sqlite SQLITE_DIR=./data go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if cfg.Store == "sqlite" {
		// OpenSQLite applies the embedded SQLite migrations on open.
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLiteDir)
		if err != nil {
			log.Printf("failed to migrate sqlite database: %v", err)
			os.Exit(1)
		}
		sqlDB.Close()
		return
	}

	opts := db.OptionsFromEnv(db.DefaultOptions(db.ProfileCLI))
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
}
