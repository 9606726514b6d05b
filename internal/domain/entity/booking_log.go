package entity

import (
	"time"

	"github.com/google/uuid"
)

// LogLevel classifies a booking log entry.
type LogLevel string

const (
	// LogLevelInfo records normal automation progress.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn records recoverable automation trouble.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError records a failure the automation could not work around.
	LogLevelError LogLevel = "error"
)

// String returns the string representation of the level.
func (l LogLevel) String() string {
	return string(l)
}

// IsValid checks if the level is a known value.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// BookingLog is one entry in a booking request's processing trail, written by
// the worker around automation runs and readable by the request's owner.
type BookingLog struct {
	ID               uuid.UUID
	BookingRequestID uuid.UUID
	Level            LogLevel
	Message          string
	Metadata         *string // Optional JSON blob with run details.
	ScreenshotURL    *string // Optional capture taken by the automation.
	CreatedAt        time.Time
}
