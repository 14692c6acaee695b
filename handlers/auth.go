// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/exam-archive/auth"
	"github.com/danielhkuo/exam-archive/middleware"
	"github.com/danielhkuo/exam-archive/models"
)

type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{auth: service}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Info("login rejected", "email", req.Email, "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid login credentials")
		return
	}
	if err != nil {
		slog.Error("login failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	slog.Info("admin signed in", "admin_id", session.User.ID)
	middleware.JSONResponse(w, http.StatusOK, session)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	if err := h.auth.Logout(r.Context(), token); err != nil {
		writeAuthError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	session, err := h.auth.Session(r.Context(), token)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, session)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	session, err := h.auth.Refresh(r.Context(), token)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, session)
}

func writeAuthError(w http.ResponseWriter, err error) {
	if errors.Is(err, auth.ErrInvalidToken) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
		return
	}
	slog.Error("session operation failed", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read session")
}
