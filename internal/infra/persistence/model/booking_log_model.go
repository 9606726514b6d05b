package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingLogModel mirrors the 'booking_logs' table, an append-only trail of
// automation progress per booking request.
type BookingLogModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BookingRequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	Level            string    `gorm:"type:varchar(10);not null"`
	Message          string    `gorm:"type:text;not null"`
	Metadata         *string   `gorm:"type:jsonb"`
	ScreenshotURL    *string   `gorm:"type:text"`
	CreatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (BookingLogModel) TableName() string {
	return "booking_logs"
}
