package controllers

import (
	"net/http"

	"tailortrack-backend/config"
	"tailortrack-backend/models"
	"tailortrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UpdateShopProfileInput struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Timezone *string `json:"timezone"`
}

type UpdateWorkingHoursInput struct {
	WorkingHours models.JSONB `json:"workingHours" binding:"required"`
}

type UpdateNotificationsInput struct {
	SMSNotifications *bool `json:"smsNotifications"`
	PickupReminders  *bool `json:"pickupReminders"`
	DueDateReminders *bool `json:"dueDateReminders"`
}

type ReminderTemplateInput struct {
	Type     string `json:"type" binding:"required,oneof=pickup_ready due_soon overdue"`
	Message  string `json:"message" binding:"required"`
	IsActive bool   `json:"isActive"`
}

type UpdateReminderTemplatesInput struct {
	Templates []ReminderTemplateInput `json:"templates" binding:"required"`
}

func loadShop(c *gin.Context) (*models.Shop, bool) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return nil, false
	}
	var shop models.Shop
	if err := config.DB.First(&shop, "id = ?", shopUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Shop not found")
		return nil, false
	}
	return &shop, true
}

// GetProfile returns the shop settings
func GetProfile(c *gin.Context) {
	shop, ok := loadShop(c)
	if !ok {
		return
	}

	var templates []models.ReminderTemplate
	config.DB.Where("shop_id = ?", shop.ID).Find(&templates)

	c.JSON(http.StatusOK, gin.H{
		"name":              shop.Name,
		"address":           shop.Address,
		"phone":             shop.Phone,
		"timezone":          shop.Timezone,
		"workingHours":      shop.WorkingHours,
		"smsNotifications":  shop.SMSNotifications,
		"pickupReminders":   shop.PickupReminders,
		"dueDateReminders":  shop.DueDateReminders,
		"reminderTemplates": templates,
	})
}

// UpdateShopProfile updates the shop's basic details
func UpdateShopProfile(c *gin.Context) {
	shop, ok := loadShop(c)
	if !ok {
		return
	}

	var input UpdateShopProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Name != nil {
		shop.Name = *input.Name
	}
	if input.Address != nil {
		shop.Address = *input.Address
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		shop.Phone = *input.Phone
	}
	if input.Timezone != nil {
		if !utils.ValidateTimezone(*input.Timezone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid timezone")
			return
		}
		shop.Timezone = *input.Timezone
	}

	if err := config.DB.Save(shop).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UpdateWorkingHours replaces the shop's working hours
func UpdateWorkingHours(c *gin.Context) {
	shop, ok := loadShop(c)
	if !ok {
		return
	}

	var input UpdateWorkingHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	shop.WorkingHours = input.WorkingHours
	if err := config.DB.Save(shop).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update working hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Working hours updated"})
}

// UpdateNotifications toggles SMS reminder settings
func UpdateNotifications(c *gin.Context) {
	shop, ok := loadShop(c)
	if !ok {
		return
	}

	var input UpdateNotificationsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.SMSNotifications != nil {
		shop.SMSNotifications = *input.SMSNotifications
	}
	if input.PickupReminders != nil {
		shop.PickupReminders = *input.PickupReminders
	}
	if input.DueDateReminders != nil {
		shop.DueDateReminders = *input.DueDateReminders
	}

	if err := config.DB.Save(shop).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}

// UpdateReminderTemplates replaces the shop's reminder message templates
func UpdateReminderTemplates(c *gin.Context) {
	shop, ok := loadShop(c)
	if !ok {
		return
	}

	var input UpdateReminderTemplatesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	for _, t := range input.Templates {
		template := models.ReminderTemplate{
			ID:       uuid.New(),
			ShopID:   shop.ID,
			Type:     t.Type,
			Message:  t.Message,
			IsActive: t.IsActive,
		}
		err := config.DB.Where("shop_id = ? AND type = ?", shop.ID, t.Type).
			Assign(map[string]interface{}{
				"message":   t.Message,
				"is_active": t.IsActive,
			}).
			FirstOrCreate(&template).Error
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update templates")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder templates updated"})
}
