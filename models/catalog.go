package models

import (
	"github.com/google/uuid"
)

// CatalogItem is an entry in the shop's alteration price list, used to
// prefill garment service lines.
type CatalogItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ShopID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null"`
	Description string
	Unit        string `gorm:"default:'item'"`
	PriceCents  int64  `gorm:"not null"`
	Duration    int    // in minutes
	Category    string `gorm:"default:'General'"`
	IsActive    bool   `gorm:"default:true"`
}
