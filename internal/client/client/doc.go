// Package client contains the client-side building blocks of the portal.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface) the session manager and
//     the CLI talk to: login, register, verify, the member directory and
//     profiles, the business suite, analytics and a health probe.
//  2. An HTTP/JSON implementation (see HTTPClient). Every request carries
//     "Authorization: Bearer <token>" when the TokenSource yields a token.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations), opening
//     an SQLite state database and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses become *APIError carrying the status and the server's
// message. 401 responses also match ErrUnauthorized and transport failures
// match ErrUnavailable, both via errors.Is.
package client
