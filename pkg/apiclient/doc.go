/*
Package apiclient provides an HTTP client for the phonebook API.

# Overview

The client covers the full API surface the application consumes:
authentication (login, register), the current-user profile, TOTP
two-factor enrollment and verification, and contact CRUD with search.

	client := apiclient.New("http://localhost:8081", tokens, logger)

	tok, err := client.Login(ctx, "a@b.com", "password123")
	// store tok.AccessToken, then authenticated calls work:
	me, err := client.Me(ctx)
	contacts, err := client.ListContacts(ctx, 0, 100)

# Bearer injection

Authorization headers are not set per call. The client's transport
attaches "Bearer <token>" to every outgoing request whenever the token
source yields a token, so a freshly stored credential is picked up by all
subsequent calls uniformly. Login and register naturally go out without a
header because no token is held yet.

# Errors

API rejections come back as *APIError carrying the HTTP status and the
server's detail message, so callers can render validation failures (for
example a 422 from register) verbatim. 404s on contact operations
additionally match ErrNotFound via errors.Is.
*/
package apiclient
