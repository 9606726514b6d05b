package impl

import (
	"context"
	"log/slog"

	deliverycontext "booker/internal/delivery/context"
	"booker/internal/domain/entity"
	domainerrors "booker/internal/domain/errors"
	"booker/internal/domain/repository"
	"booker/internal/domain/service"
	"booker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bookingService implements the BookingUsecase interface.
type bookingService struct {
	bookingRepo repository.BookingRequestRepository
	logRepo     repository.BookingLogRepository
	cipher      service.CredentialCipher
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// BookingServiceParams holds dependencies for BookingService, injected by Fx.
type BookingServiceParams struct {
	fx.In

	BookingRepo repository.BookingRequestRepository
	LogRepo     repository.BookingLogRepository
	Cipher      service.CredentialCipher
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewBookingService is the constructor for bookingService.
func NewBookingService(params BookingServiceParams) usecase.BookingUsecase {
	return &bookingService{
		bookingRepo: params.BookingRepo,
		logRepo:     params.LogRepo,
		cipher:      params.Cipher,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *bookingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create seals the credentials, persists the request, and dispatches a job.
// The request's durability never depends on queue availability: a failed
// dispatch is logged and swallowed, leaving the request pending.
func (srv *bookingService) Create(ctx context.Context, input *usecase.CreateBookingInput) (*entity.BookingRequest, error) {
	srv.log(ctx).Info("Creating booking request",
		slog.Any("userID", input.Actor.UserID),
		slog.String("site", input.Criteria.Site),
	)

	sealed, err := srv.cipher.Seal(input.Credentials)
	if err != nil {
		srv.log(ctx).Error("Failed to seal credentials", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to seal booking credentials")
	}

	request := &entity.BookingRequest{
		UserID:            input.Actor.UserID,
		Status:            entity.BookingStatusPending,
		Criteria:          input.Criteria,
		SealedCredentials: sealed,
	}

	if err := srv.bookingRepo.Create(ctx, request); err != nil {
		srv.log(ctx).Error("Failed to persist booking request", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create booking request")
	}

	srv.dispatchJob(ctx, request.ID)

	return request, nil
}

// dispatchJob enqueues a processing job for the request. Failures are logged,
// never propagated: the request stays pending and safe to re-enqueue because
// processing is idempotent per request ID.
func (srv *bookingService) dispatchJob(ctx context.Context, requestID uuid.UUID) {
	event := &service.BookingJobEvent{
		RequestID: requestID.String(),
		Action:    service.BookingJobActionProcess,
	}

	if err := srv.publisher.PublishBookingJob(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to dispatch booking job, request stays pending",
			slog.Any("requestID", requestID),
			slog.Any("error", err),
		)
	}
}

// Get loads one request for the owner or an admin. Existence is confirmed
// before ownership, so a missing request is 404 and someone else's is 403.
func (srv *bookingService) Get(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.BookingRequest, error) {
	return srv.loadAuthorized(ctx, actor, id)
}

// List returns requests visible to the actor, newest first.
func (srv *bookingService) List(ctx context.Context, actor entity.Actor) ([]*entity.BookingRequest, error) {
	if actor.IsAdmin {
		requests, err := srv.bookingRepo.ListAll(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list booking requests")
		}

		return requests, nil
	}

	requests, err := srv.bookingRepo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user booking requests")
	}

	return requests, nil
}

// Update applies criteria and, for admins, status changes. Non-admin criteria
// edits are only legal while the request is still pending.
func (srv *bookingService) Update(ctx context.Context, input *usecase.UpdateBookingInput) (*entity.BookingRequest, error) {
	request, err := srv.loadAuthorized(ctx, input.Actor, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Criteria != nil {
		if !input.Actor.IsAdmin && request.Status != entity.BookingStatusPending {
			srv.log(ctx).Warn("Rejected criteria edit on non-pending request",
				slog.Any("requestID", input.ID),
				slog.String("status", request.Status.String()),
			)

			return nil, errors.Wrap(domainerrors.ErrBookingInvalidState, "criteria edits require pending status")
		}

		if err := srv.bookingRepo.UpdateCriteria(ctx, input.ID, *input.Criteria); err != nil {
			return nil, errors.Wrap(err, "failed to update booking criteria")
		}
		request.Criteria = *input.Criteria
	}

	if input.Status != nil {
		if !input.Actor.IsAdmin {
			return nil, errors.Wrap(domainerrors.ErrForbidden, "only admins may force a status")
		}
		if !input.Status.IsValid() {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown booking status")
		}

		if err := srv.bookingRepo.UpdateStatus(ctx, input.ID, *input.Status); err != nil {
			return nil, errors.Wrap(err, "failed to update booking status")
		}
		request.Status = *input.Status

		srv.log(ctx).Info("Admin forced booking status",
			slog.Any("requestID", input.ID),
			slog.String("status", input.Status.String()),
		)
	}

	return request, nil
}

// Delete removes a request. Owners may delete only while pending; admins at
// any status.
func (srv *bookingService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	request, err := srv.loadAuthorized(ctx, actor, id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin && request.Status != entity.BookingStatusPending {
		return errors.Wrap(domainerrors.ErrBookingInvalidState, "only pending requests can be deleted by their owner")
	}

	if err := srv.bookingRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete booking request")
	}

	srv.log(ctx).Info("Booking request deleted", slog.Any("requestID", id), slog.Any("userID", actor.UserID))

	return nil
}

// GetLogs returns the processing trail of one request, oldest first.
func (srv *bookingService) GetLogs(ctx context.Context, actor entity.Actor, id uuid.UUID) ([]*entity.BookingLog, error) {
	if _, err := srv.loadAuthorized(ctx, actor, id); err != nil {
		return nil, err
	}

	logs, err := srv.logRepo.ListByRequest(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list booking logs")
	}

	return logs, nil
}

// loadAuthorized fetches a request and applies the owner-or-admin check.
func (srv *bookingService) loadAuthorized(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.BookingRequest, error) {
	request, err := srv.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingRequestNotFound) {
			return nil, errors.Wrap(domainerrors.ErrBookingRequestNotFound, "booking request lookup")
		}

		return nil, errors.Wrap(err, "failed to load booking request")
	}

	if !actor.CanAccess(request.UserID) {
		srv.log(ctx).Warn("Actor denied access to booking request",
			slog.Any("requestID", id),
			slog.Any("userID", actor.UserID),
		)

		return nil, errors.Wrap(domainerrors.ErrForbidden, "booking request belongs to another user")
	}

	return request, nil
}
