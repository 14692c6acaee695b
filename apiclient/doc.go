// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apiclient is the HTTP client for the exam archive API.

Client satisfies catalog.Remote and session.Remote, so the same stores the
server runs can sit on top of it in a client process:

	c := apiclient.New("http://localhost:3318",
		apiclient.WithTokenStore(apiclient.NewFileTokenStore(path)))
	exams := catalog.NewStore(c)
	auth := session.NewStore(c)

The access token is kept in a TokenStore so a later process picks up the
same session. Sign-in, sign-out and refresh are announced to listeners
registered with OnAuthStateChange.

Non-2xx responses come back as *Error whose text is the server's message.
*/
package apiclient
