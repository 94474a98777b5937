// Package common contains shared constants and helpers used across
// the affiliate client components.
package common

// Keys of the local metadata table that hold the persisted session.
const (
	// StorageKeyShop holds the JSON-serialized logged-in shop.
	StorageKeyShop = "shop"
	// StorageKeyAccessToken holds the opaque bearer credential.
	StorageKeyAccessToken = "access_token"
)

// RequestIDHeaderName is the HTTP header used to correlate outbound
// requests with client log lines.
const RequestIDHeaderName = "X-Request-ID"

// Application views the client navigates between.
const (
	ViewLogin     = "/shop/login"
	ViewRegister  = "/shop/register"
	ViewDashboard = "/shop/dashboard"
	ViewBloggers  = "/shop/bloggers"
)
