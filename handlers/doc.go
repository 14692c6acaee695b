// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the exam archive API.

# Handler Types

  - ExamHandler: public catalog reads and admin writes, backed by a catalog.Store
  - AuthHandler: admin sign-in, session lookup, refresh and sign-out

	examHandler := handlers.NewExamHandler(store)
	authHandler := handlers.NewAuthHandler(authService)

# Catalog Reads

Reads are served from the store's in-memory snapshot; they never hit the
database. Query parameters (career, q, cycle, type, period, year, sort)
are applied with catalog.Query. Cycle and type accept legacy spellings
("VII", "Susti").

# Catalog Writes

Writes go through catalog.Upload, catalog.Edit and Store.Delete, which
persist first and patch the snapshot only on success. Admin handlers
expect middleware.RequireAdmin in front of them.

# Errors

Failures use the models.ErrorResponse envelope. Validation errors are
400, unknown ids 404, rejected credentials or tokens 401, anything
else 500. The message is the underlying error text.
*/
package handlers
