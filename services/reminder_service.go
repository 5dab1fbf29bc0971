// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"tailortrack-backend/models"
	"tailortrack-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	var shops []models.Shop
	if err := s.db.Where("sms_notifications = ?", true).Find(&shops).Error; err != nil {
		log.Printf("Failed to fetch shops: %v", err)
		return
	}

	for i := range shops {
		s.ProcessShopReminders(&shops[i])
	}

	log.Println("Daily reminder processing completed")
}

// ProcessShopReminders sends pickup-ready, due-soon, and overdue SMS for one
// shop. "Today" resolves in the shop's configured time zone.
func (s *ReminderService) ProcessShopReminders(shop *models.Shop) {
	today := utils.TodayIn(shop.Timezone)

	var garments []models.Garment
	err := s.db.Preload("Services").
		Where("shop_id = ? AND stage <> ?", shop.ID, models.StageDone).
		Find(&garments).Error
	if err != nil {
		log.Printf("Shop %s: failed to fetch garments: %v", shop.ID, err)
		return
	}

	for i := range garments {
		g := &garments[i]
		switch {
		case shop.PickupReminders && g.Stage == models.StageReadyForPickup:
			s.sendGarmentReminder(shop, g, models.ReminderTypePickupReady, 0)
		case shop.DueDateReminders && g.DueDate != nil:
			status := utils.ClassifyDueDate(*g.DueDate, today)
			if status.IsTomorrow {
				s.sendGarmentReminder(shop, g, models.ReminderTypeDueSoon, status.DaysUntilDue)
			} else if status.IsPast {
				s.sendGarmentReminder(shop, g, models.ReminderTypeOverdue, -status.DaysUntilDue)
			}
		}
	}
}

func (s *ReminderService) sendGarmentReminder(shop *models.Shop, garment *models.Garment, reminderType string, days int) {
	// One reminder per garment per type per day.
	var already int64
	s.db.Model(&models.ReminderLog{}).
		Where("garment_id = ? AND type = ? AND sent_at >= ?", garment.ID, reminderType, utils.TodayIn(shop.Timezone)).
		Count(&already)
	if already > 0 {
		return
	}

	var order models.Order
	if err := s.db.Preload("Client").First(&order, "id = ?", garment.OrderID).Error; err != nil {
		log.Printf("Shop %s: failed to load order for garment %s: %v", shop.ID, garment.ID, err)
		return
	}
	if order.Client.Phone == "" {
		return
	}

	message := s.renderTemplate(shop.ID, reminderType, order.Client.Name, garment.Label, days)
	logEntry := models.ReminderLog{
		ID:        uuid.New(),
		ShopID:    shop.ID,
		ClientID:  order.ClientID,
		GarmentID: garment.ID,
		Type:      reminderType,
		Message:   message,
		SentAt:    time.Now(),
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(order.Client.Phone)
	params.SetFrom(s.from)
	params.SetBody(message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("Shop %s: failed to send %s SMS to %s: %v", shop.ID, reminderType, order.Client.Phone, err)
		logEntry.Status = "failed"
		logEntry.Error = err.Error()
	} else {
		logEntry.Status = "sent"
	}

	if err := s.db.Create(&logEntry).Error; err != nil {
		log.Printf("Shop %s: failed to log reminder: %v", shop.ID, err)
	}
}

func (s *ReminderService) renderTemplate(shopID uuid.UUID, reminderType, clientName, garmentLabel string, days int) string {
	var tmpl models.ReminderTemplate
	err := s.db.Where("shop_id = ? AND type = ? AND is_active = ?", shopID, reminderType, true).
		First(&tmpl).Error
	message := tmpl.Message
	if err != nil || message == "" {
		message = defaultTemplate(reminderType)
	}

	message = strings.ReplaceAll(message, "{client_name}", clientName)
	message = strings.ReplaceAll(message, "{garment}", garmentLabel)
	message = strings.ReplaceAll(message, "{days}", strconv.Itoa(days))
	return message
}

func defaultTemplate(reminderType string) string {
	switch reminderType {
	case models.ReminderTypePickupReady:
		return "Hi {client_name}, your {garment} is ready for pickup!"
	case models.ReminderTypeDueSoon:
		return "Hi {client_name}, your {garment} will be ready tomorrow."
	case models.ReminderTypeOverdue:
		return "Hi {client_name}, your {garment} has been waiting {days} days. Please arrange pickup."
	default:
		return fmt.Sprintf("Hi {client_name}, update on your {garment} (%s).", reminderType)
	}
}
