package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tailortrack-backend/config"
	"tailortrack-backend/models"
	"tailortrack-backend/pagination"
	"tailortrack-backend/services"
	"tailortrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GarmentServiceInput is one alteration line on a new garment
type GarmentServiceInput struct {
	CatalogItemID  *uuid.UUID `json:"catalogItemId"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Quantity       int        `json:"quantity" binding:"min=0"`
	Unit           string     `json:"unit"`
	UnitPriceCents *int64     `json:"unitPriceCents"`
}

// GarmentInput is one garment on a new order
type GarmentInput struct {
	Label     string                `json:"label" binding:"required"`
	Type      string                `json:"type"`
	DueDate   *time.Time            `json:"dueDate"`
	EventDate *time.Time            `json:"eventDate"`
	Notes     string                `json:"notes"`
	Services  []GarmentServiceInput `json:"services"`
}

// CreateOrderInput defines the expected JSON structure for creating an order
type CreateOrderInput struct {
	ClientID uuid.UUID      `json:"clientId" binding:"required"`
	Notes    string         `json:"notes"`
	Garments []GarmentInput `json:"garments" binding:"required,min=1"`
}

type UpdateOrderInput struct {
	Status *string `json:"status" binding:"omitempty,oneof=active completed cancelled"`
	Notes  *string `json:"notes"`
}

// shopToday resolves "today" at midnight in the shop's configured time zone.
func shopToday(shopUUID uuid.UUID) time.Time {
	var shop models.Shop
	if err := config.DB.Select("timezone").First(&shop, "id = ?", shopUUID).Error; err != nil {
		return utils.TodayIn("UTC")
	}
	return utils.TodayIn(shop.Timezone)
}

func nextOrderNumber(tx *gorm.DB, shopUUID uuid.UUID) (string, error) {
	var count int64
	if err := tx.Model(&models.Order{}).Unscoped().Where("shop_id = ?", shopUUID).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%04d", count+1), nil
}

// CreateOrder creates an order with its garments and service lines. Every
// new garment starts in stage New regardless of how many lines it carries.
func CreateOrder(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	userUUID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate client exists in the same shop
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

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		number, err := nextOrderNumber(tx, shopUUID)
		if err != nil {
			return err
		}

		order = models.Order{
			ID:              uuid.New(),
			ShopID:          shopUUID,
			CreatedByUserID: userUUID,
			OrderNumber:     number,
			ClientID:        client.ID,
			Status:          models.OrderStatusActive,
			Notes:           input.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, gi := range input.Garments {
			garment := models.Garment{
				ID:        uuid.New(),
				ShopID:    shopUUID,
				OrderID:   order.ID,
				Label:     gi.Label,
				Type:      gi.Type,
				Stage:     models.StageNew,
				DueDate:   gi.DueDate,
				EventDate: gi.EventDate,
				Notes:     gi.Notes,
			}
			if err := tx.Create(&garment).Error; err != nil {
				return err
			}

			for _, si := range gi.Services {
				line, err := buildServiceLine(tx, shopUUID, garment.ID, si)
				if err != nil {
					return err
				}
				if err := tx.Create(line).Error; err != nil {
					return err
				}
			}
		}

		if err := services.SyncOrderDueDate(tx, order.ID); err != nil {
			return err
		}
		return tx.Model(&client).UpdateColumn("total_orders", gorm.Expr("total_orders + 1")).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	var created models.Order
	if err := config.DB.Preload("Client").Preload("Garments.Services").
		First(&created, "id = ?", order.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusCreated, orderView(&created, shopToday(shopUUID)))
}

// buildServiceLine resolves a service input against the catalog when a
// catalog item is referenced, otherwise requires an explicit name and price.
func buildServiceLine(tx *gorm.DB, shopUUID, garmentID uuid.UUID, si GarmentServiceInput) (*models.GarmentService, error) {
	line := models.GarmentService{
		ID:          uuid.New(),
		ShopID:      shopUUID,
		GarmentID:   garmentID,
		Name:        si.Name,
		Description: si.Description,
		Quantity:    si.Quantity,
		Unit:        si.Unit,
	}
	if line.Quantity <= 0 {
		line.Quantity = 1
	}

	if si.CatalogItemID != nil {
		var item models.CatalogItem
		if err := tx.Where("shop_id = ? AND id = ?", shopUUID, *si.CatalogItemID).
			First(&item).Error; err != nil {
			return nil, fmt.Errorf("catalog item not found: %s", *si.CatalogItemID)
		}
		line.CatalogItemID = &item.ID
		if line.Name == "" {
			line.Name = item.Name
		}
		if line.Unit == "" {
			line.Unit = item.Unit
		}
		line.UnitPriceCents = item.PriceCents
	}
	if si.UnitPriceCents != nil {
		line.UnitPriceCents = *si.UnitPriceCents
	}
	if line.Name == "" {
		return nil, errors.New("service line requires a name or catalog item")
	}
	if line.UnitPriceCents < 0 {
		return nil, errors.New("service price cannot be negative")
	}
	if line.Unit == "" {
		line.Unit = "item"
	}
	return &line, nil
}

// GetOrders lists orders one cursor page at a time. Sorting, stage filter,
// and text search push into the query; filter=overdue is evaluated locally.
func GetOrders(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}

	req, ok := listRequestFromQuery(c)
	if !ok {
		return
	}

	today := shopToday(shopUUID)
	page, err := services.ListOrders(config.DB, shopUUID, today, req)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) || errors.Is(err, pagination.ErrInvalidSortField) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		}
		return
	}

	items := make([]gin.H, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, orderView(&page.Items[i], today))
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"nextCursor": page.NextCursor,
		"hasMore":    page.HasMore,
	})
}

// listRequestFromQuery parses the shared listing query parameters.
func listRequestFromQuery(c *gin.Context) (pagination.Request, bool) {
	req := pagination.Request{
		SortField: c.DefaultQuery("sortField", pagination.SortCreatedAt),
		Desc:      c.DefaultQuery("sortOrder", "desc") == "desc",
		Stage:     c.Query("stage"),
		Search:    c.Query("search"),
		Filter:    c.Query("filter"),
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit")
			return req, false
		}
		req.Limit = n
	}
	if req.Stage != "" {
		if _, err := models.ParseStage(req.Stage); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid stage filter")
			return req, false
		}
	}
	if err := pagination.ValidateFilter(req.Filter); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return req, false
	}
	cursor, err := pagination.DecodeToken(c.Query("cursor"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid cursor")
		return req, false
	}
	req.Cursor = cursor
	return req, true
}

// GetOrder retrieves one order with garments, services, and derived fields
func GetOrder(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	orderUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.Preload("Client").Preload("Garments.Services").
		Where("shop_id = ? AND id = ?", shopUUID, orderUUID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, orderView(&order, shopToday(shopUUID)))
}

// UpdateOrder updates order status and notes
func UpdateOrder(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	orderUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, orderUUID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Status != nil {
		order.Status = *input.Status
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}

	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder soft deletes an order and its garments
func DeleteOrder(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	orderUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, orderUUID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Block deletion once invoiced; cancel instead.
	var invoiced int64
	config.DB.Model(&models.Invoice{}).Where("order_id = ?", order.ID).Count(&invoiced)
	if invoiced > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Order has invoices; cancel it instead")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.Garment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
