// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"booker/config"
	"booker/internal/domain/service"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Tokens are signed, not encrypted: the claims are readable, the signature is not forgeable.
type jwtService struct {
	secret []byte
}

// tokenClaims is the wire shape of a session token.
type tokenClaims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Type    string `json:"type"`
	jwt.RegisteredClaims
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Auth == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{secret: []byte(cfg.SecretKey.Auth)}, nil
}

// Issue creates a signed token of the given type. Lifetimes are policy
// constants: 15 minutes for access tokens, 7 days for refresh tokens.
func (s *jwtService) Issue(claims service.Claims, tokenType service.TokenType) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
		Type:    string(tokenType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL(tokenType))),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify validates the signature, expiry, and type discriminator of a token.
// The signing method check rejects algorithm substitution; the jwt library
// enforces expiry against the current time.
func (s *jwtService) Verify(token string, expected service.TokenType) (*service.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	if claims.Type != string(expected) {
		return nil, errors.Errorf("unexpected token type %q", claims.Type)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "invalid subject in token")
	}

	return &service.Claims{
		UserID:  userID,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
		Type:    service.TokenType(claims.Type),
	}, nil
}

// TTL returns the configured lifetime for the given token type.
func (s *jwtService) TTL(tokenType service.TokenType) time.Duration {
	if tokenType == service.TokenTypeRefresh {
		return refreshTTL
	}

	return accessTTL
}
