// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/exam-archive/auth"
	"github.com/danielhkuo/exam-archive/catalog"
	"github.com/danielhkuo/exam-archive/cliparse"
	"github.com/danielhkuo/exam-archive/handlers"
	"github.com/danielhkuo/exam-archive/middleware"
	"github.com/danielhkuo/exam-archive/repository"
)

// Version is reported by GET /
const Version = "exam-archive API v1"

func NewRouter(db *sql.DB, store *catalog.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	authService := auth.NewService(
		repository.NewAdminRepository(db),
		repository.NewSessionRepository(db),
		cfg.JWTSecret,
		cfg.SessionTTL,
	)

	// Initialize handlers
	examHandler := handlers.NewExamHandler(store)
	authHandler := handlers.NewAuthHandler(authService)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(authService, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Catalog (public)
	mux.HandleFunc("GET /careers", middleware.WithLogging(examHandler.ListCareers))
	mux.HandleFunc("GET /careers/{key}/exams", middleware.WithLogging(examHandler.CareerExams))
	mux.HandleFunc("GET /exams", middleware.WithLogging(examHandler.ListExams))
	mux.HandleFunc("GET /exams/years", middleware.WithLogging(examHandler.ListYears))
	mux.HandleFunc("GET /exams/{id}", middleware.WithLogging(examHandler.GetExam))

	// Admin session
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /auth/session", middleware.WithLogging(authHandler.Session))
	mux.HandleFunc("POST /auth/refresh", middleware.WithLogging(authHandler.Refresh))

	// Catalog management (requires Bearer token)
	mux.HandleFunc("POST /admin/exams", admin(examHandler.CreateExam))
	mux.HandleFunc("POST /admin/exams/reload", admin(examHandler.Reload))
	mux.HandleFunc("PATCH /admin/exams/{id}", admin(examHandler.UpdateExam))
	mux.HandleFunc("DELETE /admin/exams/{id}", admin(examHandler.DeleteExam))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(Version))
	})

	return mux
}
