// Package session keeps the authenticated shop (the principal) and its
// access token.
//
// The in-memory copy and the persisted copy in the local metadata table are
// written only by Login and Logout. Initialize restores the in-memory copy
// from storage once at startup. The store never calls the request
// authorizer; the authorizer reads the persisted token on its own.
package session
