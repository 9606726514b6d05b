package usecase

import (
	"context"

	"booker/internal/domain/entity"
	"booker/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateBookingInput defines the data required to create a booking request.
// Credentials arrive in plaintext and are sealed before anything is persisted.
type CreateBookingInput struct {
	Actor       entity.Actor
	Criteria    entity.BookingCriteria
	Credentials service.BookingCredentials
}

// UpdateBookingInput defines a booking request mutation. Criteria and Status
// are both optional; Status may only be set by admin actors.
type UpdateBookingInput struct {
	Actor    entity.Actor
	ID       uuid.UUID
	Criteria *entity.BookingCriteria
	Status   *entity.BookingStatus
}

// BookingUsecase defines the interface for booking-request business operations
// driven by authenticated API callers.
type BookingUsecase interface {
	// Create seals the credentials, persists the request in pending state,
	// and dispatches a processing job. Dispatch failure does not fail the
	// call; the request stays pending and re-enqueueable.
	Create(ctx context.Context, input *CreateBookingInput) (*entity.BookingRequest, error)

	// Get loads one request. Owner or admin only; existence is checked
	// before ownership so missing requests surface as not-found.
	Get(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.BookingRequest, error)

	// List returns the actor's requests, or every user's for admins,
	// newest first.
	List(ctx context.Context, actor entity.Actor) ([]*entity.BookingRequest, error)

	// Update edits criteria while pending (owners) or regardless of status
	// (admins); admins may also force a status.
	Update(ctx context.Context, input *UpdateBookingInput) (*entity.BookingRequest, error)

	// Delete removes a request. Owners only while pending; admins always.
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error

	// GetLogs returns the processing trail of one request, oldest first.
	// Same visibility as Get.
	GetLogs(ctx context.Context, actor entity.Actor, id uuid.UUID) ([]*entity.BookingLog, error)
}

// BookingJobUsecase defines the worker-side interface for executing booking
// jobs delivered from the queue.
type BookingJobUsecase interface {
	// ProcessBookingJob claims a pending request, runs the automation, and
	// records the terminal outcome. Delivery is at-least-once: requests
	// already claimed or finished are acknowledged without side effects.
	ProcessBookingJob(ctx context.Context, requestID uuid.UUID) error
}
