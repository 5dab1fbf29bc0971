package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodStripe = "stripe"

	PaymentStatePending   = "pending"
	PaymentStateSucceeded = "succeeded"
	PaymentStateFailed    = "failed"
)

type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ShopID    uuid.UUID `gorm:"type:uuid;index;not null"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null"`

	Method      string `gorm:"type:varchar(20);not null"`
	Status      string `gorm:"type:varchar(20);default:'pending'"`
	AmountCents int64  `gorm:"not null"`

	// Stripe reconciliation. FeeCents/NetCents come from the balance
	// transaction once the charge settles; zero until synced.
	StripePaymentIntentID string `gorm:"index"`
	StripeChargeID        string
	FeeCents              int64 `gorm:"default:0"`
	NetCents              int64 `gorm:"default:0"`

	PaidAt *time.Time
	Notes  string

	gorm.Model
}
