package model

import (
	"time"

	"github.com/google/uuid"
)

// InviteModel mirrors the 'invites' table. UsedBy and UsedAt stay NULL until
// a signup consumes the code.
type InviteModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code      string     `gorm:"type:varchar(32);unique;not null"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	UsedBy    *uuid.UUID `gorm:"type:uuid"`
	UsedAt    *time.Time
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (InviteModel) TableName() string {
	return "invites"
}
