package repository

import (
	"context"
	"errors"

	"booker/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBookingRequestNotFound is returned when no booking request matches the given ID.
var ErrBookingRequestNotFound = errors.New("booking request not found")

// ErrStatusConflict is returned by conditional status updates when the stored
// status no longer matches the expected one. Workers use it to detect that a
// redelivered message has already been handled.
var ErrStatusConflict = errors.New("booking request status changed concurrently")

// ListLimit caps every booking-request listing, newest first.
const ListLimit = 100

// BookingRequestRepository defines persistence operations for booking requests.
type BookingRequestRepository interface {
	// Create persists a new booking request in its initial pending state.
	Create(ctx context.Context, request *entity.BookingRequest) error

	// FindByID retrieves a single booking request by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingRequest, error)

	// ListByUser retrieves the user's requests, newest-created first,
	// capped at ListLimit rows.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BookingRequest, error)

	// ListAll retrieves requests across all users, newest-created first,
	// capped at ListLimit rows. Admin listings only.
	ListAll(ctx context.Context) ([]*entity.BookingRequest, error)

	// UpdateCriteria replaces the stored criteria of a request.
	UpdateCriteria(ctx context.Context, id uuid.UUID, criteria entity.BookingCriteria) error

	// UpdateStatus force-sets the status. Admin overrides only; workers use
	// TransitionStatus instead.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error

	// TransitionStatus moves a request from an expected status to the next
	// one, optionally recording a result payload or error message. The
	// update is conditional on the stored status still matching from; a
	// zero-row outcome surfaces as ErrStatusConflict so reprocessing a
	// request that already moved on stays a no-op.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, result, errMsg *string) error

	// Delete removes a booking request.
	Delete(ctx context.Context, id uuid.UUID) error
}
