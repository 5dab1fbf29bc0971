package controllers

import (
	"errors"
	"net/http"

	"tailortrack-backend/config"
	"tailortrack-backend/models"
	"tailortrack-backend/services"
	"tailortrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payments is wired with the Stripe-backed payment service at startup.
type Payments struct {
	Service *services.PaymentService
}

type RecordPaymentInput struct {
	Method      string `json:"method" binding:"required,oneof=cash card"`
	AmountCents int64  `json:"amountCents" binding:"required,min=1"`
	Notes       string `json:"notes"`
}

func loadShopInvoice(c *gin.Context, shopUUID, invoiceUUID uuid.UUID) (*models.Invoice, bool) {
	var invoice models.Invoice
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &invoice, true
}

// CreatePaymentIntent opens a Stripe PaymentIntent for the invoice balance
// and returns the client secret.
func (p *Payments) CreatePaymentIntent(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	invoiceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	invoice, ok := loadShopInvoice(c, shopUUID, invoiceUUID)
	if !ok {
		return
	}

	payment, clientSecret, err := p.Service.CreatePaymentIntent(invoice)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to create payment intent")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment":      payment,
		"clientSecret": clientSecret,
	})
}

// RecordPayment books a cash or external card payment against an invoice.
func (p *Payments) RecordPayment(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	invoiceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice, ok := loadShopInvoice(c, shopUUID, invoiceUUID)
	if !ok {
		return
	}
	if input.AmountCents > invoice.BalanceCents() {
		utils.RespondWithError(c, http.StatusBadRequest, "Payment exceeds invoice balance")
		return
	}

	payment, err := services.RecordCashPayment(config.DB, invoice, input.Method, input.AmountCents, input.Notes)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// SyncPayment refreshes a Stripe payment from the provider and reconciles
// fee and net amounts once the charge settled.
func (p *Payments) SyncPayment(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	paymentUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payment models.Payment
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, paymentUUID).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if payment.Method != models.PaymentMethodStripe {
		utils.RespondWithError(c, http.StatusBadRequest, "Only Stripe payments can be synced")
		return
	}

	if err := p.Service.SyncPayment(&payment); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to sync payment")
		return
	}

	c.JSON(http.StatusOK, payment)
}

// GetInvoicePayments lists the payments recorded against an invoice.
func (p *Payments) GetInvoicePayments(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	invoiceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if _, ok := loadShopInvoice(c, shopUUID, invoiceUUID); !ok {
		return
	}

	var payments []models.Payment
	if err := config.DB.Where("shop_id = ? AND invoice_id = ?", shopUUID, invoiceUUID).
		Order("created_at DESC").Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}
