package repository

import (
	"context"

	"booker/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingLogRepository defines persistence operations for the per-request
// processing trail written by the worker.
type BookingLogRepository interface {
	// Create persists a single log entry.
	Create(ctx context.Context, log *entity.BookingLog) error

	// ListByRequest retrieves all log entries for a booking request,
	// oldest first.
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.BookingLog, error)
}
