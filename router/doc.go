// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the exam archive API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, store, cfg)

The catalog store is shared with the caller so it can be loaded before the
server starts accepting requests.

# Endpoints

Health:

	GET /health
	GET /

Catalog (public):

	GET /careers              - Careers with exam counts
	GET /careers/{key}/exams  - Exams of one career (same filters as /exams)
	GET /exams                - All exams, or filtered by career, q, cycle,
	                            type, period, year and sort
	GET /exams/years          - Distinct years, newest first
	GET /exams/{id}           - One exam

Admin session:

	POST /auth/login   - Email and password, returns a session
	POST /auth/logout  - Revokes the bearer token
	GET  /auth/session - Current session for the bearer token
	POST /auth/refresh - Extends the session, returns a new token

Catalog management (requires Authorization: Bearer <token>):

	POST   /admin/exams        - Upload an exam
	PATCH  /admin/exams/{id}   - Edit an exam
	DELETE /admin/exams/{id}   - Delete an exam
	POST   /admin/exams/reload - Reread the catalog from the database
*/
package router
