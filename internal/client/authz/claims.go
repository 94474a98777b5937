package authz

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the informational view of a credential.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// DescribeToken decodes the claims of a JWT credential without verifying
// it. The result is for display only; the client never expires or
// refreshes credentials.
func DescribeToken(raw string) (TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return TokenClaims{}, fmt.Errorf("credential is not a JWT: %w", err)
	}

	var out TokenClaims
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
