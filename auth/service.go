// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/exam-archive/models"
	"github.com/danielhkuo/exam-archive/repository"
)

// AdminStore persists admin accounts
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (models.Admin, error)
	GetByID(ctx context.Context, id string) (models.Admin, error)
	Upsert(ctx context.Context, admin models.Admin) (models.Admin, error)
}

// SessionStore persists admin sessions
type SessionStore interface {
	Create(ctx context.Context, session models.AdminSession) error
	Get(ctx context.Context, id string) (models.AdminSession, error)
	Extend(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// Service issues and checks admin sessions. A token is only honoured while
// its session row exists, so Logout revokes it immediately.
type Service struct {
	admins   AdminStore
	sessions SessionStore
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewService(admins AdminStore, sessions SessionStore, secret string, ttl time.Duration) *Service {
	return &Service{
		admins:   admins,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login checks the password and opens a new session
func (s *Service) Login(ctx context.Context, email, password string) (models.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.Session{}, ErrInvalidCredentials
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to load admin: %w", err)
	}

	if err := CheckPassword(admin.PasswordHash, password); err != nil {
		return models.Session{}, err
	}

	now := s.now().UTC()
	session := models.AdminSession{
		ID:        GenerateID(),
		AdminID:   admin.ID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return s.issue(admin, session)
}

// Verify resolves a token to the admin it was issued for
func (s *Service) Verify(ctx context.Context, token string) (models.User, *Claims, error) {
	claims, err := ParseToken(token, s.secret)
	if err != nil {
		return models.User{}, nil, err
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, nil, ErrInvalidToken
	}
	if err != nil {
		return models.User{}, nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.AdminID != claims.Subject || !session.ExpiresAt.After(s.now()) {
		return models.User{}, nil, ErrInvalidToken
	}

	admin, err := s.admins.GetByID(ctx, session.AdminID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, nil, ErrInvalidToken
	}
	if err != nil {
		return models.User{}, nil, fmt.Errorf("failed to load admin: %w", err)
	}

	return userOf(admin), claims, nil
}

// Session returns the full session view for a valid token
func (s *Service) Session(ctx context.Context, token string) (models.Session, error) {
	user, claims, err := s.Verify(ctx, token)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Time.UTC(),
		User:        user,
	}, nil
}

// Refresh extends the session and returns a fresh token for it
func (s *Service) Refresh(ctx context.Context, token string) (models.Session, error) {
	_, claims, err := s.Verify(ctx, token)
	if err != nil {
		return models.Session{}, err
	}

	expiresAt := s.now().UTC().Add(s.ttl)
	if err := s.sessions.Extend(ctx, claims.SessionID, expiresAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Session{}, ErrInvalidToken
		}
		return models.Session{}, fmt.Errorf("failed to extend session: %w", err)
	}

	admin, err := s.admins.GetByID(ctx, claims.Subject)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to load admin: %w", err)
	}

	return s.issue(admin, models.AdminSession{
		ID:        claims.SessionID,
		AdminID:   admin.ID,
		ExpiresAt: expiresAt,
	})
}

// Logout deletes the session behind the token
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := ParseToken(token, s.secret)
	if err != nil {
		return err
	}

	err = s.sessions.Delete(ctx, claims.SessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// EnsureAdmin creates the admin account or resets its password and name
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (models.Admin, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.Admin{}, errors.New("admin email and password are required")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.Admin{}, err
	}

	admin, err := s.admins.Upsert(ctx, models.Admin{
		ID:           GenerateID(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to save admin: %w", err)
	}
	return admin, nil
}

func (s *Service) issue(admin models.Admin, session models.AdminSession) (models.Session, error) {
	token, err := GenerateToken(admin.ID, session.ID, s.secret, session.ExpiresAt)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{
		AccessToken: token,
		ExpiresAt:   session.ExpiresAt,
		User:        userOf(admin),
	}, nil
}

func userOf(admin models.Admin) models.User {
	return models.User{ID: admin.ID, Email: admin.Email, Name: admin.Name}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
