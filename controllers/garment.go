package controllers

import (
	"errors"
	"net/http"
	"time"

	"tailortrack-backend/config"
	"tailortrack-backend/models"
	"tailortrack-backend/pagination"
	"tailortrack-backend/services"
	"tailortrack-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateGarmentInput struct {
	Label     *string    `json:"label"`
	Type      *string    `json:"type"`
	DueDate   *time.Time `json:"dueDate"`
	EventDate *time.Time `json:"eventDate"`
	Notes     *string    `json:"notes"`
	// Manual stage override. The automatic classifier never moves a garment
	// out of Done; this is the only way back.
	Stage *string `json:"stage" binding:"omitempty"`
}

// GetGarments lists garments across the shop one cursor page at a time
func GetGarments(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}

	req, ok := listRequestFromQuery(c)
	if !ok {
		return
	}

	today := shopToday(shopUUID)
	page, err := services.ListGarments(config.DB, shopUUID, today, req)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) || errors.Is(err, pagination.ErrInvalidSortField) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve garments")
		}
		return
	}

	items := make([]gin.H, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, garmentView(&page.Items[i], today))
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"nextCursor": page.NextCursor,
		"hasMore":    page.HasMore,
	})
}

// GetGarment retrieves one garment with services and derived fields
func GetGarment(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	garmentUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var garment models.Garment
	if err := config.DB.Preload("Services").
		Where("shop_id = ? AND id = ?", shopUUID, garmentUUID).
		First(&garment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Garment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, garmentView(&garment, shopToday(shopUUID)))
}

// UpdateGarment edits garment details. A stage value here is an explicit
// manual override that bypasses the automatic classifier.
func UpdateGarment(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	garmentUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateGarmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var garment models.Garment
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, garmentUUID).
		First(&garment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Garment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Label != nil {
		garment.Label = *input.Label
	}
	if input.Type != nil {
		garment.Type = *input.Type
	}
	dueDateChanged := false
	if input.DueDate != nil {
		garment.DueDate = input.DueDate
		dueDateChanged = true
	}
	if input.EventDate != nil {
		garment.EventDate = input.EventDate
	}
	if input.Notes != nil {
		garment.Notes = *input.Notes
	}
	if input.Stage != nil {
		stage, err := models.ParseStage(*input.Stage)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid stage")
			return
		}
		if garment.Stage == models.StageDone && stage != models.StageDone {
			// Reopening clears the pickup stamp.
			garment.PickedUpAt = nil
		}
		garment.Stage = stage
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&garment).Error; err != nil {
			return err
		}
		if dueDateChanged {
			return services.SyncOrderDueDate(tx, garment.OrderID)
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update garment")
		return
	}

	GetGarment(c)
}

// PickupGarment is the explicit action that forces a garment to Done and
// stamps the pickup time. The automatic classifier never produces Done.
func PickupGarment(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	garmentUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var garment models.Garment
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, garmentUUID).
		First(&garment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Garment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if garment.Stage == models.StageDone {
		utils.RespondWithError(c, http.StatusConflict, "Garment already picked up")
		return
	}

	now := time.Now()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&garment).Updates(map[string]interface{}{
			"stage":        models.StageDone,
			"picked_up_at": &now,
		}).Error; err != nil {
			return err
		}

		// Close the order once every garment is picked up.
		var open int64
		if err := tx.Model(&models.Garment{}).
			Where("order_id = ? AND stage <> ?", garment.OrderID, models.StageDone).
			Count(&open).Error; err != nil {
			return err
		}
		if open == 0 {
			return tx.Model(&models.Order{}).Where("id = ?", garment.OrderID).
				Update("status", models.OrderStatusCompleted).Error
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record pickup")
		return
	}

	GetGarment(c)
}
