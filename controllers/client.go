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

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name         string       `json:"name" binding:"required"`
	Phone        string       `json:"phone" binding:"required"`
	Email        *string      `json:"email"`
	Notes        string       `json:"notes"`
	Measurements models.JSONB `json:"measurements"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name         *string       `json:"name"`
	Phone        *string       `json:"phone"`
	Email        *string       `json:"email"`
	Notes        *string       `json:"notes"`
	Measurements *models.JSONB `json:"measurements"`
	IsActive     *bool         `json:"isActive"`
}

// CreateClient creates a new client for the shop
func CreateClient(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	userUUID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if phone already exists for this shop
	var existingClient models.Client
	if err := config.DB.Where("shop_id = ? AND phone = ?", shopUUID, input.Phone).
		First(&existingClient).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Client with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	client := models.Client{
		ID:              uuid.New(),
		ShopID:          shopUUID,
		CreatedByUserID: userUUID,
		Name:            input.Name,
		Phone:           input.Phone,
		Notes:           input.Notes,
		Measurements:    input.Measurements,
		IsActive:        true,
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if client.Measurements == nil {
		client.Measurements = models.JSONB{}
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients retrieves all clients for the shop
func GetClients(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}

	q := config.DB.Where("shop_id = ?", shopUUID)
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("(name ILIKE ? OR phone ILIKE ?)", like, like)
	}

	var clients []models.Client
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a specific client by ID
func GetClient(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	clientUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var client models.Client
	if err := config.DB.Preload("Orders").Where("shop_id = ? AND id = ?", shopUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient updates an existing client
func UpdateClient(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	clientUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		if client.Phone != *input.Phone {
			var existingClient models.Client
			if err := config.DB.Where("shop_id = ? AND phone = ?", shopUUID, *input.Phone).
				First(&existingClient).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another client with this phone number already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		client.Phone = *input.Phone
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}
	if input.Measurements != nil {
		client.Measurements = *input.Measurements
	}
	if input.IsActive != nil {
		client.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient soft deletes a client
func DeleteClient(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	clientUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var client models.Client
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}
