package service

import (
	"context"
)

// BookingJobEvent is the queue message that hands a booking request to the
// worker. The request ID doubles as the idempotency key: delivery is
// at-least-once and handlers must check current status before mutating.
type BookingJobEvent struct {
	RequestID string `json:"request_id"`
	Action    string `json:"action"`
}

// BookingJobActionProcess asks the worker to attempt the booking.
const BookingJobActionProcess = "process"

// EventPublisher defines the interface for publishing booking jobs to a message queue
type EventPublisher interface {
	// PublishBookingJob publishes a booking job for async processing
	PublishBookingJob(ctx context.Context, event *BookingJobEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
