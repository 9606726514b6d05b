package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingRequestModel mirrors the 'booking_requests' table. Criteria is the
// JSON-encoded search criteria; SealedCredentials is the encrypted site
// credential record and is never returned to clients.
type BookingRequestModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Status            string    `gorm:"type:varchar(20);not null;index"`
	Criteria          string    `gorm:"type:jsonb;not null"`
	SealedCredentials string    `gorm:"type:text;not null"`
	Result            *string   `gorm:"type:jsonb"`
	Error             *string   `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (BookingRequestModel) TableName() string {
	return "booking_requests"
}
