// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedded embed.FS

// Open connects to the database of the given type ("sqlite" or "postgres")
// and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	driver, _, err := dialectFor(dbType)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; in-memory databases exist per connection
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// Migrate applies all pending embedded migrations.
// Safe to call multiple times.
func Migrate(ctx context.Context, conn *sql.DB, dbType string) error {
	migrations, err := migrationsFS()
	if err != nil {
		return err
	}

	provider, err := newProvider(conn, dbType, migrations)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}

	return nil
}

func migrationsFS() (fs.FS, error) {
	migrations, err := fs.Sub(embedded, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	return migrations, nil
}

func newProvider(conn *sql.DB, dbType string, migrations fs.FS) (*goose.Provider, error) {
	_, dialect, err := dialectFor(dbType)
	if err != nil {
		return nil, err
	}

	provider, err := goose.NewProvider(dialect, conn, migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

func dialectFor(dbType string) (string, database.Dialect, error) {
	switch dbType {
	case "sqlite", "":
		return "sqlite", database.DialectSQLite3, nil
	case "postgres":
		return "postgres", database.DialectPostgres, nil
	default:
		return "", "", fmt.Errorf("unsupported database type %q", dbType)
	}
}
