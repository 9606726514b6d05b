package postgres

import (
	"context"

	"booker/internal/domain/entity"
	domainerrors "booker/internal/domain/errors"
	"booker/internal/domain/repository"
	"booker/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookingLogRepository implements the repository.BookingLogRepository interface.
type bookingLogRepository struct {
	db *gorm.DB
}

// NewBookingLogRepository is the constructor for bookingLogRepository.
func NewBookingLogRepository(db *gorm.DB) repository.BookingLogRepository {
	return &bookingLogRepository{
		db: db,
	}
}

// Create persists a single log entry.
func (repo *bookingLogRepository) Create(ctx context.Context, log *entity.BookingLog) error {
	logM := fromBookingLogDomain(log)

	if err := repo.db.WithContext(ctx).Create(logM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrBookingRequestNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create booking log")
	}

	log.ID = logM.ID
	log.CreatedAt = logM.CreatedAt

	return nil
}

// ListByRequest retrieves all log entries for a booking request, oldest first.
func (repo *bookingLogRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.BookingLog, error) {
	var logModels []*model.BookingLogModel

	if err := repo.db.WithContext(ctx).
		Where("booking_request_id = ?", requestID).
		Order("created_at ASC").
		Find(&logModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list booking logs")
	}

	logs := make([]*entity.BookingLog, 0, len(logModels))
	for _, logM := range logModels {
		logs = append(logs, toBookingLogDomain(logM))
	}

	return logs, nil
}

// --- Mapper Functions ---

// toBookingLogDomain converts a GORM BookingLogModel to a domain BookingLog entity.
func toBookingLogDomain(data *model.BookingLogModel) *entity.BookingLog {
	if data == nil {
		return nil
	}

	return &entity.BookingLog{
		ID:               data.ID,
		BookingRequestID: data.BookingRequestID,
		Level:            entity.LogLevel(data.Level),
		Message:          data.Message,
		Metadata:         data.Metadata,
		ScreenshotURL:    data.ScreenshotURL,
		CreatedAt:        data.CreatedAt,
	}
}

// fromBookingLogDomain converts a domain BookingLog entity to a GORM BookingLogModel.
func fromBookingLogDomain(data *entity.BookingLog) *model.BookingLogModel {
	if data == nil {
		return nil
	}

	return &model.BookingLogModel{
		ID:               data.ID,
		BookingRequestID: data.BookingRequestID,
		Level:            data.Level.String(),
		Message:          data.Message,
		Metadata:         data.Metadata,
		ScreenshotURL:    data.ScreenshotURL,
		CreatedAt:        data.CreatedAt,
	}
}
