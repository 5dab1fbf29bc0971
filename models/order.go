package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusActive    = "active"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ShopID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shop_order_number,priority:1"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	OrderNumber string    `gorm:"not null;uniqueIndex:idx_shop_order_number,priority:2"`
	ClientID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Status      string    `gorm:"type:varchar(20);default:'active'"`

	// Maintained as the latest due date across the order's garments whenever
	// a garment's due date changes; never recomputed at read time.
	DueDate *time.Time `gorm:"type:date"`
	Notes   string

	Client   Client    `gorm:"foreignKey:ClientID"`
	Garments []Garment `gorm:"foreignKey:OrderID"`

	gorm.Model
}

// ControllingDueDate returns the latest due date across the given garments,
// or nil when none of them carries one.
func ControllingDueDate(garments []Garment) *time.Time {
	var latest *time.Time
	for i := range garments {
		due := garments[i].DueDate
		if due == nil {
			continue
		}
		if latest == nil || due.After(*latest) {
			latest = due
		}
	}
	return latest
}
