// controllers/invoice.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"tailortrack-backend/config"
	"tailortrack-backend/models"
	"tailortrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateInvoiceInput defines the expected JSON structure for creating an
// invoice from an order. Amounts are integer cents; the tax rate is a
// percentage applied to subtotal minus discount.
type CreateInvoiceInput struct {
	OrderID       uuid.UUID  `json:"orderId" binding:"required"`
	InvoiceDate   *time.Time `json:"invoiceDate"`
	DiscountCents int64      `json:"discountCents" binding:"min=0"`
	TaxPercent    float64    `json:"taxPercent" binding:"min=0"`
	Notes         string     `json:"notes"`
}

type UpdateInvoiceInput struct {
	DiscountCents *int64   `json:"discountCents" binding:"omitempty,min=0"`
	TaxPercent    *float64 `json:"taxPercent" binding:"omitempty,min=0"`
	Notes         *string  `json:"notes"`
}

func nextInvoiceNumber(tx *gorm.DB) (string, error) {
	var count int64
	if err := tx.Model(&models.Invoice{}).Unscoped().Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%06d", count+1), nil
}

// CreateInvoice builds an invoice from an order's active service lines.
// Removed services never appear on a new invoice.
func CreateInvoice(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	userUUID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Preload("Garments.Services").
		Where("shop_id = ? AND id = ?", shopUUID, input.OrderID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var subtotal int64
	var items []models.InvoiceItem
	for gi := range order.Garments {
		garment := &order.Garments[gi]
		for si := range garment.Services {
			line := &garment.Services[si]
			if !line.Active() {
				continue
			}
			total := line.LineTotalCents()
			subtotal += total
			lineID := line.ID
			items = append(items, models.InvoiceItem{
				ID:               uuid.New(),
				GarmentServiceID: &lineID,
				ServiceName:      line.Name,
				GarmentLabel:     garment.Label,
				Quantity:         line.Quantity,
				UnitPriceCents:   line.UnitPriceCents,
				TotalCents:       total,
			})
		}
	}
	if len(items) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Order has no active services to invoice")
		return
	}
	if input.DiscountCents > subtotal {
		utils.RespondWithError(c, http.StatusBadRequest, "Discount exceeds subtotal")
		return
	}

	taxCents := utils.PercentOfCents(subtotal-input.DiscountCents, input.TaxPercent)
	totalCents := subtotal - input.DiscountCents + taxCents

	invoiceDate := time.Now()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}

	orderID := order.ID
	invoice := models.Invoice{
		ID:              uuid.New(),
		ShopID:          shopUUID,
		CreatedByUserID: userUUID,
		OrderID:         &orderID,
		ClientID:        order.ClientID,
		InvoiceDate:     invoiceDate,
		SubtotalCents:   subtotal,
		DiscountCents:   input.DiscountCents,
		TaxCents:        taxCents,
		TotalCents:      totalCents,
		PaymentStatus:   models.PaymentStatusUnpaid,
		Notes:           input.Notes,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		number, err := nextInvoiceNumber(tx)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	invoice.Items = items
	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices lists the shop's invoices
func GetInvoices(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}

	q := config.DB.Where("shop_id = ?", shopUUID)
	if status := c.Query("status"); status != "" {
		q = q.Where("payment_status = ?", status)
	}
	if clientID := c.Query("clientId"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}

	var invoices []models.Invoice
	if err := q.Preload("Items").Order("invoice_date DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice with items and payments
func GetInvoice(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	invoiceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Items").Preload("Payments").
		Where("shop_id = ? AND id = ?", shopUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoice":      invoice,
		"balanceCents": invoice.BalanceCents(),
		"totalDisplay": utils.FormatCents(invoice.TotalCents),
	})
}

// UpdateInvoice adjusts discount, tax, and notes on an unpaid invoice
func UpdateInvoice(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	invoiceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if invoice.PaidCents > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Cannot edit an invoice with recorded payments")
		return
	}

	if input.DiscountCents != nil {
		if *input.DiscountCents > invoice.SubtotalCents {
			utils.RespondWithError(c, http.StatusBadRequest, "Discount exceeds subtotal")
			return
		}
		invoice.DiscountCents = *input.DiscountCents
	}
	if input.TaxPercent != nil {
		invoice.TaxCents = utils.PercentOfCents(invoice.SubtotalCents-invoice.DiscountCents, *input.TaxPercent)
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}
	invoice.TotalCents = invoice.SubtotalCents - invoice.DiscountCents + invoice.TaxCents

	if err := config.DB.Save(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice soft deletes an invoice that has no payments
func DeleteInvoice(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	invoiceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if invoice.PaidCents > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Cannot delete an invoice with recorded payments")
		return
	}

	if err := config.DB.Delete(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted"})
}
