// Package cli provides the interactive affiliate shop command-line client.
//
// It wires configuration, the local session database, the API client and
// the view router into a REPL. Shop owners log in, manage products, review
// orders and analytics, register bloggers and issue affiliate links; the
// public landing flow (visit a product through a link and place an order)
// is available without logging in.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
