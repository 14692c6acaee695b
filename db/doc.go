// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and applies schema migrations.

# Drivers

Two database types are supported:

  - sqlite: modernc.org/sqlite (pure Go), used for development and tests
  - postgres: github.com/lib/pq, used in production

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Queries across the repository use $n placeholders, which both drivers accept.

# Migrations

Migrations are embedded SQL files run with goose:

	err := db.Migrate(ctx, conn, cfg.DatabaseType)

  - 00001_create_tables.sql: exams, admins, admin_sessions
  - 00002_normalize_labels.sql: rewrites "Susti" to "Sustitutorio" and
    Roman-numeral cycles to "1".."10"

# Tables

exams:

	id TEXT PRIMARY KEY          -- UUID assigned on insert
	title, course, career TEXT
	cycle, type, period TEXT
	year INTEGER
	exam_url TEXT                -- link to the university repository
	created_at TIMESTAMP         -- listing order (newest first)

admins:

	id TEXT PRIMARY KEY
	email TEXT UNIQUE
	name TEXT
	password_hash TEXT           -- bcrypt

admin_sessions:

	id TEXT PRIMARY KEY          -- carried in the session token
	admin_id TEXT → admins(id)
	expires_at TIMESTAMP
*/
package db
