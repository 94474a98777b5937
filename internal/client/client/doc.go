// Package client talks to the affiliate REST API.
//
// # Overview
//
// The package provides:
//  1. The Client interface: authentication (token exchange + shop record),
//     registration, products, orders, analytics, bloggers and affiliate links.
//  2. HTTPClient, the net/http implementation. Every request goes through
//     the authz.Transport stage, which decides whether the bearer credential
//     is attached, and through a logging stage that stamps an X-Request-ID.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying the embedded goose migrations.
//
// # Error Handling
//
// Errors fall in three groups, matched with errors.Is / errors.As:
// ErrUnavailable (transport failure), *StatusError / ErrUnexpectedStatus
// (non-2xx response) and ErrValidation (payload rejected before dispatch).
// Nothing is retried and a 401 is not treated specially.
package client
