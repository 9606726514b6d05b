package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking request.
type BookingStatus string

const (
	// BookingStatusPending marks a freshly created request awaiting dispatch.
	BookingStatusPending BookingStatus = "pending"
	// BookingStatusProcessing marks a request claimed by a worker.
	BookingStatusProcessing BookingStatus = "processing"
	// BookingStatusCompleted marks a successfully executed booking.
	BookingStatusCompleted BookingStatus = "completed"
	// BookingStatusFailed marks a booking the automation could not complete.
	BookingStatusFailed BookingStatus = "failed"
)

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known value.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusProcessing, BookingStatusCompleted, BookingStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status is final for non-admin actors.
// Reprocessing a terminal request must be a no-op.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusFailed
}

// BookingCriteria holds the structured parameters the automation uses to
// attempt a booking on the third-party site.
type BookingCriteria struct {
	Site           string `json:"site" validate:"required"`
	TargetDate     string `json:"targetDate" validate:"required"`
	TimePreference string `json:"timePreference" validate:"omitempty,oneof=morning afternoon evening any"`
	PartySize      int    `json:"partySize" validate:"omitempty,min=1,max=20"`
	Notes          string `json:"notes" validate:"omitempty,max=500"`
}

// BookingRequest tracks one asynchronous booking job from creation to a
// terminal state. Credentials are stored sealed; status transitions are the
// only mutation path besides criteria edits while pending.
type BookingRequest struct {
	ID                uuid.UUID       // The unique identifier, also the job idempotency key.
	UserID            uuid.UUID       // The owning user.
	Status            BookingStatus   // Current lifecycle state.
	Criteria          BookingCriteria // Structured booking parameters.
	SealedCredentials string          // Encrypted third-party site credentials, opaque at rest.
	Result            *string         // JSON result payload set on completion.
	Error             *string         // Failure message set when the automation gives up.
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Actor is the authenticated identity an operation is evaluated against.
// Authorization is always the same two-variant check: the caller is an admin,
// or the caller owns the resource.
type Actor struct {
	UserID  uuid.UUID
	Email   string
	IsAdmin bool
}

// Owns reports whether the actor is the owner of a resource held by ownerID.
func (a Actor) Owns(ownerID uuid.UUID) bool {
	return a.UserID == ownerID
}

// CanAccess reports whether the actor may read or mutate a resource owned by
// ownerID: admins always, owners otherwise.
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.IsAdmin || a.Owns(ownerID)
}
