package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GarmentService is a single alteration line attached to a garment, e.g.
// "Hem trousers x1". Prices are stored in integer cents.
type GarmentService struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ShopID    uuid.UUID `gorm:"type:uuid;index;not null"`
	GarmentID uuid.UUID `gorm:"type:uuid;index;not null"`

	CatalogItemID *uuid.UUID `gorm:"type:uuid;index"` // set when prefilled from the price list

	Name           string `gorm:"not null"`
	Description    string
	Quantity       int    `gorm:"default:1"`
	Unit           string `gorm:"default:'item'"` // item, hour, panel, ...
	UnitPriceCents int64  `gorm:"not null"`

	IsDone bool `gorm:"default:false"`

	// Soft delete: a removed line keeps its row (invoices may reference it)
	// but never counts toward stage or totals. Restore clears all three.
	IsRemoved     bool `gorm:"default:false"`
	RemovedAt     *time.Time
	RemovalReason string

	gorm.Model
}

// Active reports whether the line counts toward stage and price totals.
func (s *GarmentService) Active() bool {
	return !s.IsRemoved
}

// LineTotalCents is quantity times unit price.
func (s *GarmentService) LineTotalCents() int64 {
	return int64(s.Quantity) * s.UnitPriceCents
}

// ActiveTotalCents sums line totals over the non-removed services.
func ActiveTotalCents(services []GarmentService) int64 {
	var total int64
	for i := range services {
		if services[i].Active() {
			total += services[i].LineTotalCents()
		}
	}
	return total
}
