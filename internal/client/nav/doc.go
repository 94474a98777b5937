// Package nav models the client's view navigation: a history stack with
// push/replace/back semantics and a router that maps paths to pages and
// keeps protected pages behind the session gate.
package nav
