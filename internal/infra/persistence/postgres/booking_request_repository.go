package postgres

import (
	"context"
	"encoding/json"
	"time"

	"booker/internal/domain/entity"
	domainerrors "booker/internal/domain/errors"
	"booker/internal/domain/repository"
	"booker/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookingRequestRepository implements the repository.BookingRequestRepository interface.
type bookingRequestRepository struct {
	db *gorm.DB
}

// NewBookingRequestRepository is the constructor for bookingRequestRepository.
func NewBookingRequestRepository(db *gorm.DB) repository.BookingRequestRepository {
	return &bookingRequestRepository{
		db: db,
	}
}

// Create persists a new booking request in its initial pending state.
func (repo *bookingRequestRepository) Create(ctx context.Context, request *entity.BookingRequest) error {
	requestM, err := fromBookingRequestDomain(request)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid owning user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create booking request")
	}

	request.ID = requestM.ID
	request.CreatedAt = requestM.CreatedAt
	request.UpdatedAt = requestM.UpdatedAt

	return nil
}

// FindByID retrieves a single booking request by its unique ID.
func (repo *bookingRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingRequest, error) {
	var requestM model.BookingRequestModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&requestM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookingRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find booking request by ID")
	}

	return toBookingRequestDomain(&requestM)
}

// ListByUser retrieves the user's requests, newest-created first.
func (repo *bookingRequestRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BookingRequest, error) {
	var requestModels []*model.BookingRequestModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(repository.ListLimit).
		Find(&requestModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list booking requests by user")
	}

	return toBookingRequestDomainList(requestModels)
}

// ListAll retrieves requests across all users, newest-created first.
func (repo *bookingRequestRepository) ListAll(ctx context.Context) ([]*entity.BookingRequest, error) {
	var requestModels []*model.BookingRequestModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(repository.ListLimit).
		Find(&requestModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list booking requests")
	}

	return toBookingRequestDomainList(requestModels)
}

// UpdateCriteria replaces the stored criteria of a request.
func (repo *bookingRequestRepository) UpdateCriteria(ctx context.Context, id uuid.UUID, criteria entity.BookingCriteria) error {
	encoded, err := json.Marshal(criteria)
	if err != nil {
		return errors.Wrap(err, "failed to marshal booking criteria")
	}

	result := repo.db.WithContext(ctx).
		Model(&model.BookingRequestModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"criteria":   string(encoded),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update booking criteria")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBookingRequestNotFound
	}

	return nil
}

// UpdateStatus force-sets the status without a precondition. Admin overrides only.
func (repo *bookingRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BookingRequestModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status.String(),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update booking status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBookingRequestNotFound
	}

	return nil
}

// TransitionStatus moves a request from an expected status to the next one.
// The WHERE clause carries the precondition, so concurrent workers race on the
// row update itself rather than on a read-then-write.
func (repo *bookingRequestRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, result, errMsg *string) error {
	updates := map[string]any{
		"status":     to.String(),
		"updated_at": time.Now(),
	}
	if result != nil {
		updates["result"] = *result
	}
	if errMsg != nil {
		updates["error"] = *errMsg
	}

	tx := repo.db.WithContext(ctx).
		Model(&model.BookingRequestModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(updates)

	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to transition booking status")
	}

	if tx.RowsAffected == 0 {
		var requestM model.BookingRequestModel
		if err := repo.db.WithContext(ctx).
			Select("id").
			Where("id = ?", id).
			First(&requestM).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrBookingRequestNotFound
			}

			return errors.Wrap(err, "failed to check booking request after zero-row transition")
		}

		return repository.ErrStatusConflict
	}

	return nil
}

// Delete removes a booking request.
func (repo *bookingRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.BookingRequestModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete booking request")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBookingRequestNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toBookingRequestDomain converts a GORM BookingRequestModel to a domain BookingRequest entity.
func toBookingRequestDomain(data *model.BookingRequestModel) (*entity.BookingRequest, error) {
	if data == nil {
		return nil, nil
	}

	var criteria entity.BookingCriteria
	if err := json.Unmarshal([]byte(data.Criteria), &criteria); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal booking criteria")
	}

	return &entity.BookingRequest{
		ID:                data.ID,
		UserID:            data.UserID,
		Status:            entity.BookingStatus(data.Status),
		Criteria:          criteria,
		SealedCredentials: data.SealedCredentials,
		Result:            data.Result,
		Error:             data.Error,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}, nil
}

func toBookingRequestDomainList(models []*model.BookingRequestModel) ([]*entity.BookingRequest, error) {
	requests := make([]*entity.BookingRequest, 0, len(models))
	for _, requestM := range models {
		request, err := toBookingRequestDomain(requestM)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, nil
}

// fromBookingRequestDomain converts a domain BookingRequest entity to a GORM BookingRequestModel.
func fromBookingRequestDomain(data *entity.BookingRequest) (*model.BookingRequestModel, error) {
	if data == nil {
		return nil, nil
	}

	encoded, err := json.Marshal(data.Criteria)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal booking criteria")
	}

	return &model.BookingRequestModel{
		ID:                data.ID,
		UserID:            data.UserID,
		Status:            data.Status.String(),
		Criteria:          string(encoded),
		SealedCredentials: data.SealedCredentials,
		Result:            data.Result,
		Error:             data.Error,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}, nil
}
