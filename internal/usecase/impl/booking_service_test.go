package impl

import (
	"context"
	"testing"

	"booker/internal/domain/entity"
	domainerrors "booker/internal/domain/errors"
	"booker/internal/domain/repository"
	"booker/internal/domain/service"
	"booker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCriteria = entity.BookingCriteria{
	Site:           "resy",
	TargetDate:     "2026-09-12",
	TimePreference: "evening",
	PartySize:      2,
}

func TestBookingService_Create_Success(t *testing.T) {
	fx := newBookingServiceFixture()
	ctx := context.Background()
	ownerID := uuid.New()

	credentials := service.BookingCredentials{Username: "diner@example.com", Password: "site-pass"}

	fx.cipher.On("Seal", credentials).Return("sealed-blob", nil)
	fx.bookings.On("Create", ctx, mock.MatchedBy(func(request *entity.BookingRequest) bool {
		return request.UserID == ownerID &&
			request.Status == entity.BookingStatusPending &&
			request.SealedCredentials == "sealed-blob"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.BookingRequest).ID = uuid.New()
	}).Return(nil)
	fx.publisher.On("PublishBookingJob", ctx, mock.MatchedBy(func(event *service.BookingJobEvent) bool {
		return event.Action == service.BookingJobActionProcess && event.RequestID != ""
	})).Return(nil)

	request, err := fx.service.Create(ctx, &usecase.CreateBookingInput{
		Actor:       entity.Actor{UserID: ownerID},
		Criteria:    testCriteria,
		Credentials: credentials,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, request.Status)
	fx.publisher.AssertExpectations(t)
}

func TestBookingService_Create_DispatchFailureIsSwallowed(t *testing.T) {
	fx := newBookingServiceFixture()
	ctx := context.Background()

	fx.cipher.On("Seal", mock.Anything).Return("sealed-blob", nil)
	fx.bookings.On("Create", ctx, mock.Anything).Return(nil)
	fx.publisher.On("PublishBookingJob", ctx, mock.Anything).Return(errors.New("queue unavailable"))

	request, err := fx.service.Create(ctx, &usecase.CreateBookingInput{
		Actor:       entity.Actor{UserID: uuid.New()},
		Criteria:    testCriteria,
		Credentials: service.BookingCredentials{Username: "u", Password: "p"},
	})

	// The request is durable and pending even when the queue is down.
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, request.Status)
}

func TestBookingService_Create_SealFailure(t *testing.T) {
	fx := newBookingServiceFixture()
	ctx := context.Background()

	fx.cipher.On("Seal", mock.Anything).Return("", errors.New("cipher broken"))

	_, err := fx.service.Create(ctx, &usecase.CreateBookingInput{
		Actor:       entity.Actor{UserID: uuid.New()},
		Criteria:    testCriteria,
		Credentials: service.BookingCredentials{Username: "u", Password: "p"},
	})

	assert.Error(t, err)
	fx.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_Get_NotFoundBeforeForbidden(t *testing.T) {
	fx := newBookingServiceFixture()
	ctx := context.Background()
	requestID := uuid.New()

	fx.bookings.On("FindByID", ctx, requestID).Return(nil, repository.ErrBookingRequestNotFound)

	_, err := fx.service.Get(ctx, entity.Actor{UserID: uuid.New()}, requestID)

	// Missing requests are 404 even for callers who would not own them.
	assert.ErrorIs(t, err, domainerrors.ErrBookingRequestNotFound)
}

func TestBookingService_Get_ForbiddenForStranger(t *testing.T) {
	fx := newBookingServiceFixture()
	ctx := context.Background()
	requestID := uuid.New()

	fx.bookings.On("FindByID", ctx, requestID).Return(&entity.BookingRequest{
		ID:     requestID,
		UserID: uuid.New(),
		Status: entity.BookingStatusPending,
	}, nil)

	_, err := fx.service.Get(ctx, entity.Actor{UserID: uuid.New()}, requestID)

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestBookingService_Get_AdminSeesAny(t *testing.T) {
	fx := newBookingServiceFixture()
	ctx := context.Background()
	requestID := uuid.New()

	fx.bookings.On("FindByID", ctx, requestID).Return(&entity.BookingRequest{
		ID:     requestID,
		UserID: uuid.New(),
	}, nil)

	request, err := fx.service.Get(ctx, entity.Actor{UserID: uuid.New(), IsAdmin: true}, requestID)

	require.NoError(t, err)
	assert.Equal(t, requestID, request.ID)
}

func TestBookingService_List(t *testing.T) {
	fx := newBookingServiceFixture()
	ctx := context.Background()
	userID := uuid.New()

	own := []*entity.BookingRequest{{ID: uuid.New(), UserID: userID}}
	everyone := []*entity.BookingRequest{{ID: uuid.New()}, {ID: uuid.New()}}

	fx.bookings.On("ListByUser", ctx, userID).Return(own, nil)
	fx.bookings.On("ListAll", ctx).Return(everyone, nil)

	mine, err := fx.service.List(ctx, entity.Actor{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := fx.service.List(ctx, entity.Actor{UserID: userID, IsAdmin: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBookingService_Update_OwnerWhilePending(t *testing.T) {
	fx := newBookingServiceFixture()
	ctx := context.Background()
	ownerID := uuid.New()
	requestID := uuid.New()

	fx.bookings.On("FindByID", ctx, requestID).Return(&entity.BookingRequest{
		ID:     requestID,
		UserID: ownerID,
		Status: entity.BookingStatusPending,
	}, nil)
	fx.bookings.On("UpdateCriteria", ctx, requestID, testCriteria).Return(nil)

	request, err := fx.service.Update(ctx, &usecase.UpdateBookingInput{
		Actor:    entity.Actor{UserID: ownerID},
		ID:       requestID,
		Criteria: &testCriteria,
	})

	require.NoError(t, err)
	assert.Equal(t, testCriteria, request.Criteria)
}

func TestBookingService_Update_OwnerNonPendingRejected(t *testing.T) {
	fx := newBookingServiceFixture()
	ctx := context.Background()
	ownerID := uuid.New()
	requestID := uuid.New()

	fx.bookings.On("FindByID", ctx, requestID).Return(&entity.BookingRequest{
		ID:     requestID,
		UserID: ownerID,
		Status: entity.BookingStatusCompleted,
	}, nil)

	_, err := fx.service.Update(ctx, &usecase.UpdateBookingInput{
		Actor:    entity.Actor{UserID: ownerID},
		ID:       requestID,
		Criteria: &testCriteria,
	})

	assert.ErrorIs(t, err, domainerrors.ErrBookingInvalidState)
	fx.bookings.AssertNotCalled(t, "UpdateCriteria", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Update_AdminEditsRegardlessOfStatus(t *testing.T) {
	fx := newBookingServiceFixture()
	ctx := context.Background()
	requestID := uuid.New()
	forced := entity.BookingStatusFailed

	fx.bookings.On("FindByID", ctx, requestID).Return(&entity.BookingRequest{
		ID:     requestID,
		UserID: uuid.New(),
		Status: entity.BookingStatusCompleted,
	}, nil)
	fx.bookings.On("UpdateCriteria", ctx, requestID, testCriteria).Return(nil)
	fx.bookings.On("UpdateStatus", ctx, requestID, forced).Return(nil)

	request, err := fx.service.Update(ctx, &usecase.UpdateBookingInput{
		Actor:    entity.Actor{UserID: uuid.New(), IsAdmin: true},
		ID:       requestID,
		Criteria: &testCriteria,
		Status:   &forced,
	})

	require.NoError(t, err)
	assert.Equal(t, forced, request.Status)
}

func TestBookingService_Update_NonAdminCannotForceStatus(t *testing.T) {
	fx := newBookingServiceFixture()
	ctx := context.Background()
	ownerID := uuid.New()
	requestID := uuid.New()
	forced := entity.BookingStatusCompleted

	fx.bookings.On("FindByID", ctx, requestID).Return(&entity.BookingRequest{
		ID:     requestID,
		UserID: ownerID,
		Status: entity.BookingStatusPending,
	}, nil)

	_, err := fx.service.Update(ctx, &usecase.UpdateBookingInput{
		Actor:  entity.Actor{UserID: ownerID},
		ID:     requestID,
		Status: &forced,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	fx.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Delete(t *testing.T) {
	ownerID := uuid.New()
	requestID := uuid.New()

	cases := []struct {
		name    string
		actor   entity.Actor
		status  entity.BookingStatus
		wantErr error
	}{
		{name: "owner deletes pending", actor: entity.Actor{UserID: ownerID}, status: entity.BookingStatusPending},
		{name: "owner cannot delete processing", actor: entity.Actor{UserID: ownerID}, status: entity.BookingStatusProcessing, wantErr: domainerrors.ErrBookingInvalidState},
		{name: "admin deletes completed", actor: entity.Actor{UserID: uuid.New(), IsAdmin: true}, status: entity.BookingStatusCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newBookingServiceFixture()
			ctx := context.Background()

			fx.bookings.On("FindByID", ctx, requestID).Return(&entity.BookingRequest{
				ID:     requestID,
				UserID: ownerID,
				Status: tc.status,
			}, nil)
			fx.bookings.On("Delete", ctx, requestID).Return(nil)

			err := fx.service.Delete(ctx, tc.actor, requestID)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				fx.bookings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_GetLogs(t *testing.T) {
	fx := newBookingServiceFixture()
	ctx := context.Background()
	ownerID := uuid.New()
	requestID := uuid.New()

	fx.bookings.On("FindByID", ctx, requestID).Return(&entity.BookingRequest{
		ID:     requestID,
		UserID: ownerID,
	}, nil)
	fx.logs.On("ListByRequest", ctx, requestID).Return([]*entity.BookingLog{
		{BookingRequestID: requestID, Level: entity.LogLevelInfo, Message: "automation run started"},
	}, nil)

	logs, err := fx.service.GetLogs(ctx, entity.Actor{UserID: ownerID}, requestID)

	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.LogLevelInfo, logs[0].Level)
}
