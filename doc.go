// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the exam archive API server.

The exam archive is a catalog of past university exams (parciales, finales,
sustitutorios) filed by career. Anyone can browse and filter it; signed-in
admins upload, edit and delete exams.

# Starting the Server

	JWT_SECRET=... DATABASE_URL=exams.db go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..." -p 3318

A .env file in the working directory is read first (see -env-file).

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): Secret for admin access tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SESSION_TTL (--session-ttl): Admin session lifetime (default: 12h)
  - ADMIN_EMAIL, ADMIN_PASSWORD, ADMIN_NAME: Admin account seeded at startup
  - CORS_ORIGIN (--cors-origin): Allowed browser origin

# Architecture

  - catalog: in-memory exam snapshot, queries, upload/edit validation
  - session: client-side admin session state
  - ui: notification, confirmation and edit-modal state for front ends
  - handlers: HTTP request handlers (exams, auth)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, bearer auth, JSON helpers
  - repository: SQL persistence
  - auth: Passwords, tokens and admin sessions
  - db: Connection and goose migrations
  - apiclient: HTTP client for the API
  - cliparse: Configuration parsing
  - cmd/examctl: Command-line client

See package documentation for each component.
*/
package main
