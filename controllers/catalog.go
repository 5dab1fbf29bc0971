package controllers

import (
	"errors"
	"net/http"

	"tailortrack-backend/config"
	"tailortrack-backend/models"
	"tailortrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCatalogItemInput defines the expected JSON structure for a price-list entry
type CreateCatalogItemInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	PriceCents  int64  `json:"priceCents" binding:"required,min=0"`
	Duration    int    `json:"duration" binding:"min=0"` // in minutes
	Category    string `json:"category"`
}

type UpdateCatalogItemInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Unit        *string `json:"unit"`
	PriceCents  *int64  `json:"priceCents"`
	Duration    *int    `json:"duration"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"isActive"`
}

// CreateCatalogItem adds an entry to the shop's alteration price list
func CreateCatalogItem(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}

	var input CreateCatalogItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item := models.CatalogItem{
		ID:          uuid.New(),
		ShopID:      shopUUID,
		Name:        input.Name,
		Description: input.Description,
		Unit:        input.Unit,
		PriceCents:  input.PriceCents,
		Duration:    input.Duration,
		Category:    input.Category,
		IsActive:    true,
	}
	if item.Unit == "" {
		item.Unit = "item"
	}
	if item.Category == "" {
		item.Category = "General"
	}

	if err := config.DB.Create(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create catalog item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetCatalogItems lists the shop's price list
func GetCatalogItems(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}

	q := config.DB.Where("shop_id = ?", shopUUID)
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if c.Query("all") == "" {
		q = q.Where("is_active = ?", true)
	}

	var items []models.CatalogItem
	if err := q.Order("category ASC, name ASC").Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve catalog")
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetCatalogItem retrieves a single price-list entry
func GetCatalogItem(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	itemUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var item models.CatalogItem
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, itemUUID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Catalog item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateCatalogItem updates a price-list entry
func UpdateCatalogItem(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	itemUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateCatalogItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var item models.CatalogItem
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, itemUUID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Catalog item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Price cannot be negative")
			return
		}
		item.PriceCents = *input.PriceCents
	}
	if input.Duration != nil {
		item.Duration = *input.Duration
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update catalog item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteCatalogItem retires a price-list entry
func DeleteCatalogItem(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	itemUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Model(&models.CatalogItem{}).
		Where("shop_id = ? AND id = ?", shopUUID, itemUUID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete catalog item")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Catalog item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Catalog item deleted"})
}
