// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session tracks the signed-in admin.

The store moves through three states:

	Unknown ──initialize/event──▶ Anonymous ◀──login/logout/events──▶ Authenticated

Usage:

	sessions := session.NewStore(client)
	release := sessions.Initialize(ctx)
	defer release()

	if _, err := sessions.Login(ctx, email, password); err != nil { ... }
	state, who := sessions.Current()

Login does not write the state itself: the remote's auth-state stream
reports the sign-in and the store follows it. Logout clears the local
state even when the remote sign-out fails.
*/
package session
