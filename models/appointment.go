package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentTypeFitting      = "fitting"
	AppointmentTypePickup       = "pickup"
	AppointmentTypeConsultation = "consultation"

	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusNoShow    = "no_show"
)

type Appointment struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ShopID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	ClientID uuid.UUID  `gorm:"type:uuid;index;not null"`
	OrderID  *uuid.UUID `gorm:"type:uuid;index"`

	Type            string    `gorm:"type:varchar(20);not null"`
	ScheduledAt     time.Time `gorm:"not null;index"`
	DurationMinutes int       `gorm:"default:30"`
	Status          string    `gorm:"type:varchar(20);default:'scheduled'"`
	Notes           string

	CancelledAt *time.Time
	CompletedAt *time.Time

	Client Client `gorm:"foreignKey:ClientID"`

	gorm.Model
}
