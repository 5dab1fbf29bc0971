package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReminderTypePickupReady = "pickup_ready"
	ReminderTypeDueSoon     = "due_soon"
	ReminderTypeOverdue     = "overdue"
)

type ReminderTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ShopID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Type     string    `gorm:"type:varchar(20);not null"`
	Message  string    `gorm:"type:text;not null"` // supports {client_name}, {garment}, {days}
	IsActive bool      `gorm:"default:true"`
	gorm.Model
}

type ReminderLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ShopID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null"`
	GarmentID uuid.UUID `gorm:"type:uuid;index"`

	Type    string `gorm:"type:varchar(20);not null"`
	Message string `gorm:"type:text"`
	Status  string `gorm:"type:varchar(20);default:'sent'"` // sent or failed
	Error   string

	SentAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
