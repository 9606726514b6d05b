// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"booker/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new user. Signup is
// invite-gated: a valid, unused invite code is mandatory.
type SignupInput struct {
	Email      string
	Password   string
	InviteCode string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the session token and the authenticated user after a
// successful signup or login.
type AuthOutput struct {
	AccessToken string
	User        *entity.User
}

// AuthUsecase defines the interface for authentication and invite operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Signup registers a new user, consuming the invite code atomically with
	// user creation, and issues a session token.
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)

	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Me loads the user behind an authenticated session.
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// IssueInvite mints a new invite code. Admin actors only.
	IssueInvite(ctx context.Context, actor entity.Actor) (*entity.Invite, error)
}
