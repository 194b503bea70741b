package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any structurally malformed token,
// signature mismatch, or expired claim set.
var ErrInvalidToken = errors.New("invalid token")

// Claims defines the claim set carried by issued tokens. The subject account's
// email is stored in both the jti and sub registered claims.
type Claims struct {
	jwt.RegisteredClaims
}

// Email returns the subject account email embedded in the claims.
func (c *Claims) Email() string {
	return c.ID
}

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Sign issues a compact signed token whose subject is the given email.
	Sign(email string) (string, error)

	// Verify recomputes the signature and returns the claims, failing with
	// ErrInvalidToken on mismatch or malformed input.
	Verify(tokenString string) (*Claims, error)

	// Decode extracts claims WITHOUT verifying the signature. Diagnostic use
	// only; callers must never treat the result as authenticated.
	Decode(tokenString string) (*Claims, error)
}
