package controllers

import (
	"errors"
	"net/http"
	"time"

	"tailortrack-backend/config"
	"tailortrack-backend/models"
	"tailortrack-backend/services"
	"tailortrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpdateGarmentServiceInput struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Quantity       *int    `json:"quantity" binding:"omitempty,min=1"`
	Unit           *string `json:"unit"`
	UnitPriceCents *int64  `json:"unitPriceCents" binding:"omitempty,min=0"`
	IsDone         *bool   `json:"isDone"`
}

type RemoveGarmentServiceInput struct {
	Reason string `json:"reason"`
}

// loadShopService fetches a service line scoped to the shop. Writes the
// error response itself on failure.
func loadShopService(c *gin.Context, shopUUID, serviceUUID uuid.UUID) (*models.GarmentService, bool) {
	var line models.GarmentService
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, serviceUUID).
		First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &line, true
}

// respondWithStage returns the mutated line plus the stage the garment
// landed on after recomputation.
func respondWithStage(c *gin.Context, line *models.GarmentService, stage models.Stage) {
	c.JSON(http.StatusOK, gin.H{
		"service": line,
		"stage":   stage,
	})
}

// AddGarmentService appends an alteration line to a garment and recomputes
// the garment's stage in the same transaction.
func AddGarmentService(c *gin.Context) {
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

	var input GarmentServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var line *models.GarmentService
	var stage models.Stage
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		line, err = buildServiceLine(tx, shopUUID, garment.ID, input)
		if err != nil {
			return err
		}
		if err := tx.Create(line).Error; err != nil {
			return err
		}
		stage, err = services.RecomputeStage(tx, garment.ID)
		return err
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"service": line,
		"stage":   stage,
	})
}

// UpdateGarmentService edits a line; toggling isDone here also recomputes
// the garment's stage.
func UpdateGarmentService(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	serviceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateGarmentServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	line, ok := loadShopService(c, shopUUID, serviceUUID)
	if !ok {
		return
	}
	if line.IsRemoved {
		utils.RespondWithError(c, http.StatusConflict, "Cannot edit a removed service; restore it first")
		return
	}

	if input.Name != nil {
		line.Name = *input.Name
	}
	if input.Description != nil {
		line.Description = *input.Description
	}
	if input.Quantity != nil {
		line.Quantity = *input.Quantity
	}
	if input.Unit != nil {
		line.Unit = *input.Unit
	}
	if input.UnitPriceCents != nil {
		line.UnitPriceCents = *input.UnitPriceCents
	}
	if input.IsDone != nil {
		line.IsDone = *input.IsDone
	}

	var stage models.Stage
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(line).Error; err != nil {
			return err
		}
		var err error
		stage, err = services.RecomputeStage(tx, line.GarmentID)
		return err
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	respondWithStage(c, line, stage)
}

// ToggleServiceDone flips a line's completion flag and recomputes the stage.
func ToggleServiceDone(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	serviceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	line, ok := loadShopService(c, shopUUID, serviceUUID)
	if !ok {
		return
	}
	if line.IsRemoved {
		utils.RespondWithError(c, http.StatusConflict, "Cannot complete a removed service")
		return
	}

	line.IsDone = !line.IsDone

	var stage models.Stage
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(line).Update("is_done", line.IsDone).Error; err != nil {
			return err
		}
		var err error
		stage, err = services.RecomputeStage(tx, line.GarmentID)
		return err
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to toggle service")
		return
	}

	respondWithStage(c, line, stage)
}

// RemoveGarmentService soft-deletes a line. The row stays (invoices may
// reference it) but it stops counting toward stage and totals immediately.
func RemoveGarmentService(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	serviceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	// Body is optional; a bare DELETE removes without a reason.
	var input RemoveGarmentServiceInput
	_ = c.ShouldBindJSON(&input)

	line, ok := loadShopService(c, shopUUID, serviceUUID)
	if !ok {
		return
	}
	if line.IsRemoved {
		utils.RespondWithError(c, http.StatusConflict, "Service already removed")
		return
	}

	now := time.Now()
	line.IsRemoved = true
	line.RemovedAt = &now
	line.RemovalReason = input.Reason

	var stage models.Stage
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(line).Updates(map[string]interface{}{
			"is_removed":     true,
			"removed_at":     &now,
			"removal_reason": input.Reason,
		}).Error; err != nil {
			return err
		}
		var err error
		stage, err = services.RecomputeStage(tx, line.GarmentID)
		return err
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to remove service")
		return
	}

	respondWithStage(c, line, stage)
}

// RestoreGarmentService clears the removal flags so the line counts again.
func RestoreGarmentService(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	serviceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	line, ok := loadShopService(c, shopUUID, serviceUUID)
	if !ok {
		return
	}
	if !line.IsRemoved {
		utils.RespondWithError(c, http.StatusConflict, "Service is not removed")
		return
	}

	line.IsRemoved = false
	line.RemovedAt = nil
	line.RemovalReason = ""

	var stage models.Stage
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(line).Updates(map[string]interface{}{
			"is_removed":     false,
			"removed_at":     nil,
			"removal_reason": "",
		}).Error; err != nil {
			return err
		}
		var err error
		stage, err = services.RecomputeStage(tx, line.GarmentID)
		return err
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to restore service")
		return
	}

	respondWithStage(c, line, stage)
}
