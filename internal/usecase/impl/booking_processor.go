package impl

import (
	"context"
	"log/slog"

	deliverycontext "booker/internal/delivery/context"
	"booker/internal/domain/entity"
	"booker/internal/domain/repository"
	"booker/internal/domain/service"
	"booker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bookingProcessor implements the BookingJobUsecase interface for the worker.
type bookingProcessor struct {
	bookingRepo repository.BookingRequestRepository
	logRepo     repository.BookingLogRepository
	cipher      service.CredentialCipher
	automation  service.BookingAutomation
	logger      *slog.Logger
}

// BookingProcessorParams holds dependencies for BookingProcessor, injected by Fx.
type BookingProcessorParams struct {
	fx.In

	BookingRepo repository.BookingRequestRepository
	LogRepo     repository.BookingLogRepository
	Cipher      service.CredentialCipher
	Automation  service.BookingAutomation
	Logger      *slog.Logger
}

// NewBookingProcessor is the constructor for bookingProcessor.
func NewBookingProcessor(params BookingProcessorParams) usecase.BookingJobUsecase {
	return &bookingProcessor{
		bookingRepo: params.BookingRepo,
		logRepo:     params.LogRepo,
		cipher:      params.Cipher,
		automation:  params.Automation,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the processor's logger.
func (p *bookingProcessor) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, p.logger)
}

// ProcessBookingJob executes one booking job. Delivery is at-least-once with
// the request ID as the idempotency key: terminal requests are acknowledged
// without side effects, and the pending-to-processing claim is a conditional
// update so two workers cannot both win a fresh request.
func (p *bookingProcessor) ProcessBookingJob(ctx context.Context, requestID uuid.UUID) error {
	request, err := p.bookingRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingRequestNotFound) {
			// Deleted after dispatch; nothing to do.
			p.log(ctx).Warn("Booking job for missing request, acknowledging", slog.Any("requestID", requestID))

			return nil
		}

		return errors.Wrap(err, "failed to load booking request for processing")
	}

	if request.Status.IsTerminal() {
		p.log(ctx).Info("Booking request already finished, acknowledging redelivery",
			slog.Any("requestID", requestID),
			slog.String("status", request.Status.String()),
		)

		return nil
	}

	if request.Status == entity.BookingStatusPending {
		if err := p.bookingRepo.TransitionStatus(ctx, requestID, entity.BookingStatusPending, entity.BookingStatusProcessing, nil, nil); err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				// Another worker claimed it between our read and the update.
				// Re-read and decide again on the redelivery path.
				return p.handleClaimConflict(ctx, requestID)
			}

			return errors.Wrap(err, "failed to claim booking request")
		}
	} else {
		// Already processing: a previous attempt died mid-run. The automation
		// is idempotent per request, so re-running is safe.
		p.log(ctx).Warn("Resuming booking request stuck in processing", slog.Any("requestID", requestID))
	}

	return p.runAutomation(ctx, request)
}

// handleClaimConflict re-reads a request whose claim was lost to a concurrent
// worker. Terminal means done; anything else is left for the winner.
func (p *bookingProcessor) handleClaimConflict(ctx context.Context, requestID uuid.UUID) error {
	request, err := p.bookingRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingRequestNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to re-read booking request after claim conflict")
	}

	p.log(ctx).Info("Booking request claimed by another worker, acknowledging",
		slog.Any("requestID", requestID),
		slog.String("status", request.Status.String()),
	)

	return nil
}

// runAutomation opens the sealed credentials, runs the booking automation,
// and records the terminal outcome.
func (p *bookingProcessor) runAutomation(ctx context.Context, request *entity.BookingRequest) error {
	p.appendLog(ctx, request.ID, entity.LogLevelInfo, "automation run started", nil)

	credentials, err := p.cipher.Open(request.SealedCredentials)
	if err != nil {
		// Tampered or wrong-secret records never recover on retry.
		p.log(ctx).Error("Failed to unseal credentials", slog.Any("requestID", request.ID), slog.Any("error", err))

		return p.finishFailed(ctx, request.ID, "stored credentials could not be decrypted")
	}

	result, err := p.automation.Run(ctx, request.Criteria, credentials)
	if err != nil {
		p.log(ctx).Error("Booking automation failed", slog.Any("requestID", request.ID), slog.Any("error", err))
		p.appendLog(ctx, request.ID, entity.LogLevelError, err.Error(), nil)

		return p.finishFailed(ctx, request.ID, err.Error())
	}

	p.appendLog(ctx, request.ID, entity.LogLevelInfo, "automation run completed", screenshotOrNil(result))

	if err := p.bookingRepo.TransitionStatus(ctx, request.ID, entity.BookingStatusProcessing, entity.BookingStatusCompleted, &result.ConfirmationJSON, nil); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			p.log(ctx).Warn("Completion lost a status race, acknowledging", slog.Any("requestID", request.ID))

			return nil
		}

		return errors.Wrap(err, "failed to mark booking request completed")
	}

	p.log(ctx).Info("Booking request completed", slog.Any("requestID", request.ID))

	return nil
}

// finishFailed marks the request failed with the given message. A lost status
// race means another worker already settled the request.
func (p *bookingProcessor) finishFailed(ctx context.Context, requestID uuid.UUID, message string) error {
	if err := p.bookingRepo.TransitionStatus(ctx, requestID, entity.BookingStatusProcessing, entity.BookingStatusFailed, nil, &message); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			p.log(ctx).Warn("Failure report lost a status race, acknowledging", slog.Any("requestID", requestID))

			return nil
		}

		return errors.Wrap(err, "failed to mark booking request failed")
	}

	return nil
}

// appendLog writes one trail entry. Logging failures never fail the job.
func (p *bookingProcessor) appendLog(ctx context.Context, requestID uuid.UUID, level entity.LogLevel, message string, screenshotURL *string) {
	entry := &entity.BookingLog{
		BookingRequestID: requestID,
		Level:            level,
		Message:          message,
		ScreenshotURL:    screenshotURL,
	}

	if err := p.logRepo.Create(ctx, entry); err != nil {
		p.log(ctx).Warn("Failed to append booking log", slog.Any("requestID", requestID), slog.Any("error", err))
	}
}

func screenshotOrNil(result *service.AutomationResult) *string {
	if result == nil || result.ScreenshotURL == "" {
		return nil
	}

	return &result.ScreenshotURL
}
