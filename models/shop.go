package models

import (
	"github.com/google/uuid"
)

type Shop struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Name     string    `gorm:"not null"`
	Address  string
	Phone    string
	Timezone string `gorm:"default:'UTC'"` // IANA name, resolves "today" for due dates

	WorkingHours     JSONB `gorm:"type:jsonb;default:'{}'"`
	SMSNotifications bool  `gorm:"default:false"`
	PickupReminders  bool  `gorm:"default:true"`
	DueDateReminders bool  `gorm:"default:true"`

	Users             []User             `gorm:"foreignKey:ShopID"`
	Clients           []Client           `gorm:"foreignKey:ShopID"`
	Orders            []Order            `gorm:"foreignKey:ShopID"`
	CatalogItems      []CatalogItem      `gorm:"foreignKey:ShopID"`
	Invoices          []Invoice          `gorm:"foreignKey:ShopID"`
	Appointments      []Appointment      `gorm:"foreignKey:ShopID"`
	ReminderTemplates []ReminderTemplate `gorm:"foreignKey:ShopID"`
}
