package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenType discriminates session tokens by purpose.
type TokenType string

const (
	// TokenTypeAccess is a short-lived session token.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh is a long-lived token used to mint new access tokens.
	TokenTypeRefresh TokenType = "refresh"
)

// Claims carries the authenticated identity embedded in a session token.
type Claims struct {
	UserID  uuid.UUID
	Email   string
	IsAdmin bool
	Type    TokenType
}

// TokenService defines the interface for issuing and verifying signed,
// time-limited session tokens. This abstracts the token format from the use cases.
type TokenService interface {
	// Issue creates a signed token of the given type for the identity.
	// The token lifetime is a policy constant per type, not negotiable per call.
	Issue(claims Claims, tokenType TokenType) (string, error)

	// Verify validates the signature, expiry, and type discriminator of a
	// token and returns its claims. Any failure is uniform: callers treat
	// it as "unauthenticated" without distinguishing causes.
	Verify(token string, expected TokenType) (*Claims, error)

	// TTL returns the configured lifetime for the given token type.
	TTL(tokenType TokenType) time.Duration
}
