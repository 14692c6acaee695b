// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/exam-archive/models"
	"github.com/danielhkuo/exam-archive/testutil"
)

func setupAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	testutil.CreateTestAdmin(t, db, cfg)
	return NewAuthHandler(testutil.NewAuthService(db, cfg))
}

func login(t *testing.T, handler *AuthHandler) models.Session {
	t.Helper()
	req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
		Email:    testutil.TestAdminEmail,
		Password: testutil.TestAdminPassword,
	}, nil)
	w := httptest.NewRecorder()
	handler.Login(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var session models.Session
	testutil.AssertJSON(t, w, &session)
	return session
}

func TestLogin(t *testing.T) {
	handler := setupAuthHandler(t)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "valid credentials",
			body:           models.LoginRequest{Email: testutil.TestAdminEmail, Password: testutil.TestAdminPassword},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "email is case-insensitive",
			body:           models.LoginRequest{Email: "  ADMIN@urp.edu.pe", Password: testutil.TestAdminPassword},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           models.LoginRequest{Email: testutil.TestAdminEmail, Password: "nope"},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid login credentials",
		},
		{
			name:           "unknown email",
			body:           models.LoginRequest{Email: "nobody@urp.edu.pe", Password: "x"},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid login credentials",
		},
		{
			name:           "empty body fields",
			body:           models.LoginRequest{},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/auth/login", tt.body, nil)
			w := httptest.NewRecorder()
			handler.Login(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var session models.Session
				testutil.AssertJSON(t, w, &session)
				if session.AccessToken == "" {
					t.Error("Expected access token")
				}
				if session.User.Email != testutil.TestAdminEmail {
					t.Errorf("Expected user email, got %q", session.User.Email)
				}
				return
			}

			if tt.expectedMsg != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Message != tt.expectedMsg {
					t.Errorf("Expected message %q, got %q", tt.expectedMsg, resp.Message)
				}
			}
		})
	}
}

func TestSession(t *testing.T) {
	handler := setupAuthHandler(t)
	session := login(t, handler)

	tests := []struct {
		name           string
		headers        map[string]string
		expectedStatus int
	}{
		{"valid token", testutil.BearerHeader(session.AccessToken), http.StatusOK},
		{"missing token", nil, http.StatusUnauthorized},
		{"garbage token", testutil.BearerHeader("not-a-jwt"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/auth/session", nil, tt.headers)
			w := httptest.NewRecorder()
			handler.Session(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestRefresh(t *testing.T) {
	handler := setupAuthHandler(t)
	session := login(t, handler)

	req := testutil.MakeRequest("POST", "/auth/refresh", nil, testutil.BearerHeader(session.AccessToken))
	w := httptest.NewRecorder()
	handler.Refresh(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var refreshed models.Session
	testutil.AssertJSON(t, w, &refreshed)
	if refreshed.AccessToken == "" {
		t.Fatal("Expected a new access token")
	}
	if refreshed.ExpiresAt.Before(session.ExpiresAt) {
		t.Error("Refreshed session must not expire earlier")
	}

	// The refreshed token belongs to the same session
	req = testutil.MakeRequest("GET", "/auth/session", nil, testutil.BearerHeader(refreshed.AccessToken))
	w = httptest.NewRecorder()
	handler.Session(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestLogout(t *testing.T) {
	handler := setupAuthHandler(t)
	session := login(t, handler)
	headers := testutil.BearerHeader(session.AccessToken)

	req := testutil.MakeRequest("POST", "/auth/logout", nil, headers)
	w := httptest.NewRecorder()
	handler.Logout(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	t.Run("token no longer verifies", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/auth/session", nil, headers)
		w := httptest.NewRecorder()
		handler.Session(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("second logout is unauthorized", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/logout", nil, headers)
		w := httptest.NewRecorder()
		handler.Logout(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("missing token", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/logout", nil, nil)
		w := httptest.NewRecorder()
		handler.Logout(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}
