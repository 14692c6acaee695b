// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/exam-archive/auth"
	"github.com/danielhkuo/exam-archive/cliparse"
	"github.com/danielhkuo/exam-archive/db"
	"github.com/danielhkuo/exam-archive/models"
	"github.com/danielhkuo/exam-archive/repository"
)

// TestDBURL is an in-memory SQLite database; each SetupTestDB call gets its own
const TestDBURL = ":memory:"

const (
	TestAdminEmail    = "admin@urp.edu.pe"
	TestAdminPassword = "test-admin-password"
	TestJWTSecret     = "test-jwt-secret"
)

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(context.Background(), conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   TestDBURL,
		DatabaseType:  cliparse.DatabaseSQLite,
		JWTSecret:     TestJWTSecret,
		SessionTTL:    time.Hour,
		AdminEmail:    TestAdminEmail,
		AdminPassword: TestAdminPassword,
	}
}

// NewAuthService builds the auth service over conn with the test config
func NewAuthService(conn *sql.DB, cfg cliparse.Config) *auth.Service {
	return auth.NewService(
		repository.NewAdminRepository(conn),
		repository.NewSessionRepository(conn),
		cfg.JWTSecret,
		cfg.SessionTTL,
	)
}

// CreateTestAdmin seeds the configured admin account
func CreateTestAdmin(t *testing.T, conn *sql.DB, cfg cliparse.Config) models.Admin {
	t.Helper()

	admin, err := NewAuthService(conn, cfg).EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
	if err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
	return admin
}

// LoginTestAdmin seeds the admin and returns a valid access token
func LoginTestAdmin(t *testing.T, conn *sql.DB, cfg cliparse.Config) string {
	t.Helper()

	CreateTestAdmin(t, conn, cfg)
	session, err := NewAuthService(conn, cfg).Login(context.Background(), cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		t.Fatalf("Failed to log in test admin: %v", err)
	}
	return session.AccessToken
}

// CreateTestExam inserts an exam directly, skipping validation
func CreateTestExam(t *testing.T, conn *sql.DB, in models.ExamInput) models.Exam {
	t.Helper()

	exam, err := repository.NewExamRepository(conn).Insert(context.Background(), in)
	if err != nil {
		t.Fatalf("Failed to create test exam: %v", err)
	}
	return exam
}

// ExamInput returns a valid insert payload for career
func ExamInput(career, title string, year int) models.ExamInput {
	return models.ExamInput{
		Title:   title,
		Course:  "Curso de " + title,
		Career:  career,
		Cycle:   "3",
		Type:    models.TypeParcial,
		Period:  models.PeriodFirst,
		Year:    year,
		ExamURL: "https://files.example.com/" + career + ".pdf",
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// BearerHeader returns the Authorization header for token
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
