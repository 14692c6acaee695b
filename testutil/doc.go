// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides shared helpers for HTTP and database tests.
// Databases are in-memory SQLite with the real migrations applied.
package testutil
