// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# Admin Authentication

	mux.HandleFunc("POST /admin/exams",
		middleware.WithLogging(middleware.RequireAdmin(authService, examHandler.Create)))

RequireAdmin reads "Authorization: Bearer <token>", verifies it and stores
the admin in the request context (UserFromContext). Missing or rejected
tokens get 401.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigin)(mux),
	}

An empty origin echoes the request's Origin header.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
