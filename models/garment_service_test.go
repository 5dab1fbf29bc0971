package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLineTotalCents(t *testing.T) {
	line := GarmentService{Quantity: 3, UnitPriceCents: 1250}
	assert.Equal(t, int64(3750), line.LineTotalCents())
}

func TestActiveTotalCentsSkipsRemoved(t *testing.T) {
	services := []GarmentService{
		{Quantity: 1, UnitPriceCents: 2000},
		{Quantity: 2, UnitPriceCents: 500, IsRemoved: true},
		{Quantity: 2, UnitPriceCents: 1500},
	}
	assert.Equal(t, int64(5000), ActiveTotalCents(services))
}

func TestControllingDueDate(t *testing.T) {
	assert.Nil(t, ControllingDueDate(nil))

	early := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	garments := []Garment{
		{DueDate: &early},
		{DueDate: nil},
		{DueDate: &late},
	}
	got := ControllingDueDate(garments)
	assert.NotNil(t, got)
	assert.Equal(t, late, *got)

	assert.Nil(t, ControllingDueDate([]Garment{{}, {}}))
}

func TestDerivePaymentStatus(t *testing.T) {
	assert.Equal(t, PaymentStatusUnpaid, DerivePaymentStatus(0, 5000))
	assert.Equal(t, PaymentStatusPartial, DerivePaymentStatus(2000, 5000))
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(5000, 5000))
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(6000, 5000))
}
