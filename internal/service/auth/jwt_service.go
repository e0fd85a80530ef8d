// Package auth provides token validation for caller identity and shared
// secret verification for server-to-server pulse ingestion. Tokens are
// minted by the external identity provider; this service only verifies them.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Claims represents the validated claims extracted from a JWT token.
type Claims struct {
	// UserID is the authenticated user's identifier
	UserID uuid.UUID

	// Premium reports whether the user holds a premium subscription,
	// asserted by the billing system at token mint time
	Premium bool

	// Subject is the standard JWT subject claim
	Subject string

	// IssuedAt is when the token was issued
	IssuedAt time.Time

	// ExpiresAt is when the token expires
	ExpiresAt time.Time

	// ID is the unique token identifier
	ID string
}

// JWTService defines the interface for token operations.
type JWTService interface {
	// GenerateToken creates a signed token for the given user. Used by
	// tests and local tooling; production tokens come from the identity
	// provider with the same shared secret.
	GenerateToken(ctx context.Context, userID uuid.UUID, premium bool) (string, error)

	// ValidateToken verifies a token and returns its claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid, or ErrInvalidToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}
