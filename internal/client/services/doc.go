// Package services contains the application flows behind each client view:
// the shop dashboard, product details, bloggers and affiliate links, the
// public landing page and shop registration.
package services
