package service

import (
	"context"

	"booker/internal/domain/entity"
)

// AutomationResult is what a finished automation run reports back.
type AutomationResult struct {
	// ConfirmationJSON is the serialized booking confirmation payload.
	ConfirmationJSON string
	// ScreenshotURL optionally points at a capture of the final state.
	ScreenshotURL string
}

// BookingAutomation executes the actual third-party site booking for one
// request. Implementations must be idempotent per request ID: rerunning a
// request that already booked must not book twice.
type BookingAutomation interface {
	Run(ctx context.Context, criteria entity.BookingCriteria, credentials BookingCredentials) (*AutomationResult, error)
}
