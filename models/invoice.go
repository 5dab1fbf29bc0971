package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

type Invoice struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ShopID          uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	InvoiceNumber string     `gorm:"uniqueIndex;not null"`
	OrderID       *uuid.UUID `gorm:"type:uuid;index"`
	ClientID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	InvoiceDate   time.Time  `gorm:"default:CURRENT_TIMESTAMP"`

	// All amounts in integer cents.
	SubtotalCents int64 `gorm:"not null"`
	DiscountCents int64 `gorm:"default:0"`
	TaxCents      int64 `gorm:"default:0"`
	TotalCents    int64 `gorm:"not null"`
	PaidCents     int64 `gorm:"default:0"`

	PaymentStatus string `gorm:"type:varchar(20);default:'unpaid'"`
	Notes         string

	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID"`

	gorm.Model
}

type InvoiceItem struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	InvoiceID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	GarmentServiceID *uuid.UUID `gorm:"type:uuid;index"`

	// Snapshot of the service line at invoicing time.
	ServiceName    string `gorm:"not null"`
	GarmentLabel   string
	Quantity       int   `gorm:"default:1"`
	UnitPriceCents int64 `gorm:"not null"`
	TotalCents     int64 `gorm:"not null"`
}

// BalanceCents is what the client still owes on the invoice.
func (i *Invoice) BalanceCents() int64 {
	return i.TotalCents - i.PaidCents
}

// DerivePaymentStatus maps paid-vs-total to the invoice payment status.
func DerivePaymentStatus(paidCents, totalCents int64) string {
	switch {
	case paidCents <= 0:
		return PaymentStatusUnpaid
	case paidCents < totalCents:
		return PaymentStatusPartial
	default:
		return PaymentStatusPaid
	}
}
