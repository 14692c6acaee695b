// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin authentication for the exam archive.

# Passwords

Admin passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err := auth.CheckPassword(hash, password) // ErrInvalidCredentials on mismatch

# Access Tokens

Access tokens are HS256 JWTs whose subject is the admin id and whose "sid"
claim names a row in admin_sessions:

	token, err := auth.GenerateToken(adminID, sessionID, secret, expiresAt)
	claims, err := auth.ParseToken(token, secret)

A token is only honoured while its session row exists and has not
expired, so deleting the row revokes it.

# Service

Service ties the two together over the admin and session repositories:

	svc := auth.NewService(admins, sessions, cfg.JWTSecret, cfg.SessionTTL)
	session, err := svc.Login(ctx, email, password)
	user, claims, err := svc.Verify(ctx, token)
	session, err = svc.Refresh(ctx, token)
	err = svc.Logout(ctx, token)

EnsureAdmin seeds the configured admin at startup, resetting the password
of an existing account with the same email.

# ID Generation

Random UUIDs for database records:

	id := auth.GenerateID()
*/
package auth
