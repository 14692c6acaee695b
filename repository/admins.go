// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/exam-archive/models"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	return r.getOne(ctx, `SELECT id, email, name, password_hash, created_at FROM admins WHERE email = $1`, email)
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (models.Admin, error) {
	return r.getOne(ctx, `SELECT id, email, name, password_hash, created_at FROM admins WHERE id = $1`, id)
}

// Upsert inserts the admin, or updates name and password of the account
// with the same email. The stored row is returned.
func (r *AdminRepository) Upsert(ctx context.Context, admin models.Admin) (models.Admin, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admins (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET name = excluded.name, password_hash = excluded.password_hash
	`, admin.ID, admin.Email, admin.Name, admin.PasswordHash, admin.CreatedAt)
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to upsert admin: %w", err)
	}

	return r.GetByEmail(ctx, admin.Email)
}

func (r *AdminRepository) getOne(ctx context.Context, query string, arg string) (models.Admin, error) {
	var admin models.Admin
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&admin.ID, &admin.Email, &admin.Name, &admin.PasswordHash, &admin.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Admin{}, ErrNotFound
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to query admin: %w", err)
	}
	admin.CreatedAt = admin.CreatedAt.UTC()
	return admin, nil
}

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s models.AdminSession) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_sessions (id, admin_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`, s.ID, s.AdminID, s.ExpiresAt.UTC(), s.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (models.AdminSession, error) {
	var s models.AdminSession
	err := r.db.QueryRowContext(ctx, `
		SELECT id, admin_id, expires_at, created_at
		FROM admin_sessions
		WHERE id = $1
	`, id).Scan(&s.ID, &s.AdminID, &s.ExpiresAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return models.AdminSession{}, ErrNotFound
	}
	if err != nil {
		return models.AdminSession{}, fmt.Errorf("failed to query session: %w", err)
	}
	s.ExpiresAt = s.ExpiresAt.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}

func (r *SessionRepository) Extend(ctx context.Context, id string, expiresAt time.Time) error {
	return r.expectOne(r.db.ExecContext(ctx,
		`UPDATE admin_sessions SET expires_at = $1 WHERE id = $2`, expiresAt.UTC(), id))
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.expectOne(r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = $1`, id))
}

// DeleteExpired drops sessions that expired before now
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at < $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}

func (r *SessionRepository) expectOne(result sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
