// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite path or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - JWTSecret: Secret for admin session tokens (required)
  - SessionTTL: Admin session lifetime (default: 12h)
  - AdminEmail, AdminPassword, AdminName: Admin account seeded at startup
  - CORSOrigin: Allowed browser origin

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	--jwt-secret     Session token secret
	--session-ttl    Session lifetime
	--admin-email    Admin email
	--admin-password Admin password
	--admin-name     Admin display name
	--cors-origin    Allowed CORS origin
	--env-file       Dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	JWT_SECRET     → --jwt-secret
	SESSION_TTL    → --session-ttl
	ADMIN_EMAIL    → --admin-email
	ADMIN_PASSWORD → --admin-password
	ADMIN_NAME     → --admin-name
	CORS_ORIGIN    → --cors-origin

Variables may also come from a .env file, loaded with godotenv before the
fallbacks run. Variables already present in the process environment win
over the file. CLI flags take precedence over both.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - DATABASE_TYPE is not sqlite or postgres
  - JWT_SECRET is missing
  - only one of ADMIN_EMAIL / ADMIN_PASSWORD is set
*/
package cliparse
