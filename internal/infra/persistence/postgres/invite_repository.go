package postgres

import (
	"context"
	"time"

	"booker/internal/domain/entity"
	domainerrors "booker/internal/domain/errors"
	"booker/internal/domain/repository"
	"booker/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// inviteRepository implements the repository.InviteRepository interface.
type inviteRepository struct {
	db *gorm.DB
}

// NewInviteRepository is the constructor for inviteRepository.
func NewInviteRepository(db *gorm.DB) repository.InviteRepository {
	return &inviteRepository{
		db: db,
	}
}

// Create persists a freshly issued invite.
func (repo *inviteRepository) Create(ctx context.Context, invite *entity.Invite) error {
	inviteM := fromInviteDomain(invite)

	if err := repo.db.WithContext(ctx).Create(inviteM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(err, "invite code collision")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid issuing user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create invite")
	}

	invite.ID = inviteM.ID
	invite.CreatedAt = inviteM.CreatedAt

	return nil
}

// FindByCode retrieves an invite by its uppercase-normalized code.
func (repo *inviteRepository) FindByCode(ctx context.Context, code string) (*entity.Invite, error) {
	var inviteM model.InviteModel

	if err := repo.db.WithContext(ctx).
		Where("code = ?", entity.NormalizeInviteCode(code)).
		First(&inviteM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrInviteNotFound
		}

		return nil, errors.Wrap(err, "failed to find invite by code")
	}

	return toInviteDomain(&inviteM), nil
}

// Redeem atomically marks the invite used by the given user. The conditional
// WHERE keeps the update single-winner: a second redeemer matches zero rows.
func (repo *inviteRepository) Redeem(ctx context.Context, code string, userID uuid.UUID) error {
	now := time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.InviteModel{}).
		Where("code = ? AND used_by IS NULL", entity.NormalizeInviteCode(code)).
		Updates(map[string]any{
			"used_by": userID,
			"used_at": now,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to redeem invite")
	}

	if result.RowsAffected == 0 {
		// Distinguish a spent code from one that never existed.
		if _, err := repo.FindByCode(ctx, code); errors.Is(err, repository.ErrInviteNotFound) {
			return repository.ErrInviteNotFound
		}

		return repository.ErrInviteAlreadyUsed
	}

	return nil
}

// --- Mapper Functions ---

// toInviteDomain converts a GORM InviteModel to a domain Invite entity.
func toInviteDomain(data *model.InviteModel) *entity.Invite {
	if data == nil {
		return nil
	}

	return &entity.Invite{
		ID:        data.ID,
		Code:      data.Code,
		CreatedBy: data.CreatedBy,
		UsedBy:    data.UsedBy,
		UsedAt:    data.UsedAt,
		CreatedAt: data.CreatedAt,
	}
}

// fromInviteDomain converts a domain Invite entity to a GORM InviteModel.
func fromInviteDomain(data *entity.Invite) *model.InviteModel {
	if data == nil {
		return nil
	}

	return &model.InviteModel{
		ID:        data.ID,
		Code:      entity.NormalizeInviteCode(data.Code),
		CreatedBy: data.CreatedBy,
		UsedBy:    data.UsedBy,
		UsedAt:    data.UsedAt,
		CreatedAt: data.CreatedAt,
	}
}
