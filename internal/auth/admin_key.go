package auth

import (
	"crypto/subtle"
	"errors"
)

// ErrUnauthorized is returned when a mutation is attempted without a valid
// admin key. Callers match it with errors.Is.
var ErrUnauthorized = errors.New("unauthorized: invalid admin key")

// AdminGuard checks a request-supplied admin key against the secret it was
// configured with at startup. The secret is injected once at construction,
// never read from the environment per request.
type AdminGuard struct {
	secret string
}

// NewAdminGuard creates a guard for the given secret. An empty secret is
// allowed but rejects every request, including one supplying an empty key.
func NewAdminGuard(secret string) *AdminGuard {
	return &AdminGuard{secret: secret}
}

// Authorize compares the supplied key against the configured secret.
// It denies when the key is absent or empty, when the configured secret is
// empty, or when the values differ.
func (g *AdminGuard) Authorize(suppliedKey string) error {
	if g.secret == "" || suppliedKey == "" {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(g.secret), []byte(suppliedKey)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
