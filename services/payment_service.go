// services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"tailortrack-backend/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"gorm.io/gorm"
)

// PaymentService wraps Stripe for card payments on invoices and reconciles
// processing fees from balance transactions once a charge settles.
type PaymentService struct {
	db *gorm.DB
	sc *client.API
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	sc := client.New(os.Getenv("STRIPE_SECRET_KEY"), nil)
	return &PaymentService{db: db, sc: sc}
}

// CreatePaymentIntent opens a Stripe PaymentIntent for the invoice balance
// and records a pending payment row. Returns the client secret for the
// frontend to confirm.
func (s *PaymentService) CreatePaymentIntent(invoice *models.Invoice) (*models.Payment, string, error) {
	balance := invoice.BalanceCents()
	if balance <= 0 {
		return nil, "", errors.New("invoice has no outstanding balance")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(balance),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("invoice_id", invoice.ID.String())
	params.AddMetadata("invoice_number", invoice.InvoiceNumber)
	params.SetIdempotencyKey(fmt.Sprintf("invoice-%s-%d", invoice.ID, balance))

	intent, err := s.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, "", fmt.Errorf("stripe payment intent: %w", err)
	}

	payment := models.Payment{
		ID:                    uuid.New(),
		ShopID:                invoice.ShopID,
		InvoiceID:             invoice.ID,
		Method:                models.PaymentMethodStripe,
		Status:                models.PaymentStatePending,
		AmountCents:           balance,
		StripePaymentIntentID: intent.ID,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, "", err
	}
	return &payment, intent.ClientSecret, nil
}

// SyncPayment pulls the PaymentIntent state from Stripe and, when the charge
// succeeded, reconciles the processing fee and net amount from the balance
// transaction and rolls the totals up into the invoice.
func (s *PaymentService) SyncPayment(payment *models.Payment) error {
	if payment.StripePaymentIntentID == "" {
		return errors.New("payment has no Stripe payment intent")
	}

	params := &stripe.PaymentIntentParams{}
	params.AddExpand("latest_charge.balance_transaction")

	intent, err := s.sc.PaymentIntents.Get(payment.StripePaymentIntentID, params)
	if err != nil {
		return fmt.Errorf("stripe payment intent fetch: %w", err)
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		now := time.Now()
		payment.Status = models.PaymentStateSucceeded
		payment.PaidAt = &now
		if charge := intent.LatestCharge; charge != nil {
			payment.StripeChargeID = charge.ID
			if bt := charge.BalanceTransaction; bt != nil {
				payment.FeeCents = bt.Fee
				payment.NetCents = bt.Net
			}
		}
	case stripe.PaymentIntentStatusCanceled:
		payment.Status = models.PaymentStateFailed
	default:
		// still pending client confirmation
		return s.db.Save(payment).Error
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		if payment.Status != models.PaymentStateSucceeded {
			return nil
		}
		return applyPaymentToInvoice(tx, payment.InvoiceID)
	})
}

// RecordCashPayment books a cash or external card payment against an invoice.
func RecordCashPayment(db *gorm.DB, invoice *models.Invoice, method string, amountCents int64, notes string) (*models.Payment, error) {
	if amountCents <= 0 {
		return nil, errors.New("payment amount must be positive")
	}
	now := time.Now()
	payment := models.Payment{
		ID:          uuid.New(),
		ShopID:      invoice.ShopID,
		InvoiceID:   invoice.ID,
		Method:      method,
		Status:      models.PaymentStateSucceeded,
		AmountCents: amountCents,
		NetCents:    amountCents,
		PaidAt:      &now,
		Notes:       notes,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return applyPaymentToInvoice(tx, invoice.ID)
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// applyPaymentToInvoice recomputes PaidCents and the payment status from the
// succeeded payments on the invoice.
func applyPaymentToInvoice(tx *gorm.DB, invoiceID uuid.UUID) error {
	var invoice models.Invoice
	if err := tx.First(&invoice, "id = ?", invoiceID).Error; err != nil {
		return err
	}

	var paid int64
	err := tx.Model(&models.Payment{}).
		Where("invoice_id = ? AND status = ?", invoiceID, models.PaymentStateSucceeded).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&paid).Error
	if err != nil {
		return err
	}

	err = tx.Model(&invoice).Updates(map[string]interface{}{
		"paid_cents":     paid,
		"payment_status": models.DerivePaymentStatus(paid, invoice.TotalCents),
	}).Error
	if err != nil {
		return err
	}

	// Keep the client's lifetime spend in step with their invoices.
	var spent int64
	err = tx.Model(&models.Invoice{}).
		Where("client_id = ?", invoice.ClientID).
		Select("COALESCE(SUM(paid_cents), 0)").Scan(&spent).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.Client{}).Where("id = ?", invoice.ClientID).
		UpdateColumn("total_spent_cents", spent).Error
}
