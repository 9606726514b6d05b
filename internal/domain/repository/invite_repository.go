package repository

import (
	"context"
	"errors"

	"booker/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrInviteNotFound is returned when no invite matches the given code.
	ErrInviteNotFound = errors.New("invite not found")

	// ErrInviteAlreadyUsed is returned when a redeem races or repeats: the
	// invite exists but its used-by marker is already set.
	ErrInviteAlreadyUsed = errors.New("invite already used")
)

// InviteRepository defines persistence operations for single-use invite codes.
type InviteRepository interface {
	// Create persists a freshly issued invite.
	Create(ctx context.Context, invite *entity.Invite) error

	// FindByCode retrieves an invite by its uppercase-normalized code.
	FindByCode(ctx context.Context, code string) (*entity.Invite, error)

	// Redeem atomically marks the invite used by the given user. The update
	// is conditional on the invite still being unused; a zero-row result
	// means another redeemer won and surfaces as ErrInviteAlreadyUsed.
	// The used-by and used-at columns are always written together.
	Redeem(ctx context.Context, code string, userID uuid.UUID) error
}
