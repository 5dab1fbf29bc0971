package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ShopID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shop_phone,priority:1"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name         string `gorm:"not null"`
	Phone        string `gorm:"not null;uniqueIndex:idx_shop_phone,priority:2"`
	Email        string
	Notes        string
	Measurements JSONB `gorm:"type:jsonb;default:'{}'"` // chest, waist, inseam, etc.

	TotalOrders     int   `gorm:"default:0"`
	TotalSpentCents int64 `gorm:"default:0"`
	LastOrderAt     *time.Time
	IsActive        bool `gorm:"default:true"`

	Orders       []Order       `gorm:"foreignKey:ClientID"`
	Appointments []Appointment `gorm:"foreignKey:ClientID"`

	gorm.Model
}
