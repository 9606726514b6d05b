package impl

import (
	"context"
	"testing"

	"booker/internal/domain/entity"
	"booker/internal/domain/repository"
	"booker/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingRequest(id uuid.UUID) *entity.BookingRequest {
	return &entity.BookingRequest{
		ID:                id,
		UserID:            uuid.New(),
		Status:            entity.BookingStatusPending,
		Criteria:          testCriteria,
		SealedCredentials: "sealed-blob",
	}
}

func TestBookingProcessor_HappyPath(t *testing.T) {
	fx := newBookingProcessorFixture()
	ctx := context.Background()
	requestID := uuid.New()
	credentials := service.BookingCredentials{Username: "u", Password: "p"}

	fx.bookings.On("FindByID", ctx, requestID).Return(pendingRequest(requestID), nil)
	fx.bookings.On("TransitionStatus", ctx, requestID, entity.BookingStatusPending, entity.BookingStatusProcessing, (*string)(nil), (*string)(nil)).Return(nil)
	fx.cipher.On("Open", "sealed-blob").Return(credentials, nil)
	fx.automation.On("Run", ctx, testCriteria, credentials).Return(&service.AutomationResult{ConfirmationJSON: `{"ok":true}`}, nil)
	fx.logs.On("Create", ctx, mock.Anything).Return(nil)
	fx.bookings.On("TransitionStatus", ctx, requestID, entity.BookingStatusProcessing, entity.BookingStatusCompleted, strPtr(`{"ok":true}`), (*string)(nil)).Return(nil)

	err := fx.processor.ProcessBookingJob(ctx, requestID)

	require.NoError(t, err)
	fx.bookings.AssertExpectations(t)
}

func TestBookingProcessor_TerminalRequestIsNoOp(t *testing.T) {
	for _, status := range []entity.BookingStatus{entity.BookingStatusCompleted, entity.BookingStatusFailed} {
		t.Run(status.String(), func(t *testing.T) {
			fx := newBookingProcessorFixture()
			ctx := context.Background()
			requestID := uuid.New()

			request := pendingRequest(requestID)
			request.Status = status
			fx.bookings.On("FindByID", ctx, requestID).Return(request, nil)

			err := fx.processor.ProcessBookingJob(ctx, requestID)

			// Redelivery of a settled request acknowledges without side effects.
			require.NoError(t, err)
			fx.automation.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
			fx.bookings.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBookingProcessor_MissingRequestIsAcknowledged(t *testing.T) {
	fx := newBookingProcessorFixture()
	ctx := context.Background()
	requestID := uuid.New()

	fx.bookings.On("FindByID", ctx, requestID).Return(nil, repository.ErrBookingRequestNotFound)

	err := fx.processor.ProcessBookingJob(ctx, requestID)

	assert.NoError(t, err)
}

func TestBookingProcessor_LostClaimIsAcknowledged(t *testing.T) {
	fx := newBookingProcessorFixture()
	ctx := context.Background()
	requestID := uuid.New()

	fx.bookings.On("FindByID", ctx, requestID).Return(pendingRequest(requestID), nil).Once()
	fx.bookings.On("TransitionStatus", ctx, requestID, entity.BookingStatusPending, entity.BookingStatusProcessing, (*string)(nil), (*string)(nil)).Return(repository.ErrStatusConflict)

	settled := pendingRequest(requestID)
	settled.Status = entity.BookingStatusCompleted
	fx.bookings.On("FindByID", ctx, requestID).Return(settled, nil).Once()

	err := fx.processor.ProcessBookingJob(ctx, requestID)

	require.NoError(t, err)
	fx.automation.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingProcessor_AutomationFailureMarksFailed(t *testing.T) {
	fx := newBookingProcessorFixture()
	ctx := context.Background()
	requestID := uuid.New()
	credentials := service.BookingCredentials{Username: "u", Password: "p"}

	fx.bookings.On("FindByID", ctx, requestID).Return(pendingRequest(requestID), nil)
	fx.bookings.On("TransitionStatus", ctx, requestID, entity.BookingStatusPending, entity.BookingStatusProcessing, (*string)(nil), (*string)(nil)).Return(nil)
	fx.cipher.On("Open", "sealed-blob").Return(credentials, nil)
	fx.automation.On("Run", ctx, testCriteria, credentials).Return(nil, errors.New("no tables available"))
	fx.logs.On("Create", ctx, mock.Anything).Return(nil)
	fx.bookings.On("TransitionStatus", ctx, requestID, entity.BookingStatusProcessing, entity.BookingStatusFailed, (*string)(nil), strPtr("no tables available")).Return(nil)

	err := fx.processor.ProcessBookingJob(ctx, requestID)

	require.NoError(t, err)
	fx.bookings.AssertExpectations(t)
}

func TestBookingProcessor_UnsealFailureMarksFailed(t *testing.T) {
	fx := newBookingProcessorFixture()
	ctx := context.Background()
	requestID := uuid.New()

	fx.bookings.On("FindByID", ctx, requestID).Return(pendingRequest(requestID), nil)
	fx.bookings.On("TransitionStatus", ctx, requestID, entity.BookingStatusPending, entity.BookingStatusProcessing, (*string)(nil), (*string)(nil)).Return(nil)
	fx.cipher.On("Open", "sealed-blob").Return(service.BookingCredentials{}, errors.New("cipher: message authentication failed"))
	fx.logs.On("Create", ctx, mock.Anything).Return(nil)
	fx.bookings.On("TransitionStatus", ctx, requestID, entity.BookingStatusProcessing, entity.BookingStatusFailed, (*string)(nil), strPtr("stored credentials could not be decrypted")).Return(nil)

	err := fx.processor.ProcessBookingJob(ctx, requestID)

	// Undecryptable records never recover on retry; settle instead of redelivering forever.
	require.NoError(t, err)
	fx.automation.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingProcessor_ResumesStuckProcessing(t *testing.T) {
	fx := newBookingProcessorFixture()
	ctx := context.Background()
	requestID := uuid.New()
	credentials := service.BookingCredentials{Username: "u", Password: "p"}

	stuck := pendingRequest(requestID)
	stuck.Status = entity.BookingStatusProcessing
	fx.bookings.On("FindByID", ctx, requestID).Return(stuck, nil)
	fx.cipher.On("Open", "sealed-blob").Return(credentials, nil)
	fx.automation.On("Run", ctx, testCriteria, credentials).Return(&service.AutomationResult{ConfirmationJSON: `{"ok":true}`}, nil)
	fx.logs.On("Create", ctx, mock.Anything).Return(nil)
	fx.bookings.On("TransitionStatus", ctx, requestID, entity.BookingStatusProcessing, entity.BookingStatusCompleted, strPtr(`{"ok":true}`), (*string)(nil)).Return(nil)

	err := fx.processor.ProcessBookingJob(ctx, requestID)

	require.NoError(t, err)
	fx.automation.AssertExpectations(t)
}
