package controllers

import (
	"errors"
	"net/http"
	"time"

	"tailortrack-backend/config"
	"tailortrack-backend/models"
	"tailortrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateAppointmentInput struct {
	ClientID        uuid.UUID  `json:"clientId" binding:"required"`
	OrderID         *uuid.UUID `json:"orderId"`
	Type            string     `json:"type" binding:"required,oneof=fitting pickup consultation"`
	ScheduledAt     time.Time  `json:"scheduledAt" binding:"required"`
	DurationMinutes int        `json:"durationMinutes" binding:"min=0"`
	Notes           string     `json:"notes"`
}

type UpdateAppointmentInput struct {
	Type            *string    `json:"type" binding:"omitempty,oneof=fitting pickup consultation"`
	ScheduledAt     *time.Time `json:"scheduledAt"`
	DurationMinutes *int       `json:"durationMinutes" binding:"omitempty,min=0"`
	Status          *string    `json:"status" binding:"omitempty,oneof=scheduled confirmed completed cancelled no_show"`
	Notes           *string    `json:"notes"`
}

// CreateAppointment books a fitting, pickup, or consultation slot
func CreateAppointment(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, input.ClientID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.OrderID != nil {
		var order models.Order
		if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, *input.OrderID).
			First(&order).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Order not found")
			return
		}
	}

	appointment := models.Appointment{
		ID:              uuid.New(),
		ShopID:          shopUUID,
		ClientID:        input.ClientID,
		OrderID:         input.OrderID,
		Type:            input.Type,
		ScheduledAt:     input.ScheduledAt,
		DurationMinutes: input.DurationMinutes,
		Status:          models.AppointmentStatusScheduled,
		Notes:           input.Notes,
	}
	if appointment.DurationMinutes == 0 {
		appointment.DurationMinutes = 30
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments lists appointments, optionally within a date range
func GetAppointments(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}

	q := config.DB.Where("shop_id = ?", shopUUID)
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid from date")
			return
		}
		q = q.Where("scheduled_at >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid to date")
			return
		}
		q = q.Where("scheduled_at < ?", t)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := q.Preload("Client").Order("scheduled_at ASC").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a single appointment
func GetAppointment(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	appointmentUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Client").
		Where("shop_id = ? AND id = ?", shopUUID, appointmentUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointment reschedules or edits an appointment
func UpdateAppointment(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	appointmentUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, appointmentUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if appointment.Status == models.AppointmentStatusCancelled {
		utils.RespondWithError(c, http.StatusConflict, "Cannot edit a cancelled appointment")
		return
	}

	if input.Type != nil {
		appointment.Type = *input.Type
	}
	if input.ScheduledAt != nil {
		appointment.ScheduledAt = *input.ScheduledAt
		// Rescheduling resets a confirmation back to scheduled.
		if appointment.Status == models.AppointmentStatusConfirmed {
			appointment.Status = models.AppointmentStatusScheduled
		}
	}
	if input.DurationMinutes != nil {
		appointment.DurationMinutes = *input.DurationMinutes
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}
	if input.Status != nil {
		now := time.Now()
		switch *input.Status {
		case models.AppointmentStatusCancelled:
			appointment.CancelledAt = &now
		case models.AppointmentStatusCompleted:
			appointment.CompletedAt = &now
		}
		appointment.Status = *input.Status
	}

	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// CancelAppointment marks an appointment cancelled
func CancelAppointment(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	appointmentUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.Appointment{}).
		Where("shop_id = ? AND id = ? AND status <> ?", shopUUID, appointmentUUID, models.AppointmentStatusCancelled).
		Updates(map[string]interface{}{
			"status":       models.AppointmentStatusCancelled,
			"cancelled_at": &now,
		})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel appointment")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found or already cancelled")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// CompleteAppointment marks an appointment completed
func CompleteAppointment(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	appointmentUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.Appointment{}).
		Where("shop_id = ? AND id = ? AND status NOT IN ?", shopUUID, appointmentUUID,
			[]string{models.AppointmentStatusCancelled, models.AppointmentStatusCompleted}).
		Updates(map[string]interface{}{
			"status":       models.AppointmentStatusCompleted,
			"completed_at": &now,
		})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to complete appointment")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found or already closed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment completed"})
}
