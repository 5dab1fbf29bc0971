package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Garment struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ShopID  uuid.UUID `gorm:"type:uuid;index;not null"`
	OrderID uuid.UUID `gorm:"type:uuid;index;not null"`

	Label string `gorm:"not null"` // e.g. "Navy suit jacket"
	Type  string // jacket, dress, trousers, ...

	// Denormalized lifecycle stage, recomputed transactionally whenever a
	// service on this garment changes. Once Done it stays Done unless an
	// explicit manual override sets it back.
	Stage Stage `gorm:"type:varchar(20);default:'New';index"`

	DueDate    *time.Time `gorm:"type:date"`
	EventDate  *time.Time `gorm:"type:date"` // wedding, gala, etc.
	Notes      string
	PickedUpAt *time.Time

	Services []GarmentService `gorm:"foreignKey:GarmentID"`

	gorm.Model
}
