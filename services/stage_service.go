// services/stage_service.go
package services

import (
	"log"

	"tailortrack-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecomputeStage re-derives a garment's stage from its current service rows
// and saves it when the Done guard allows. Call inside the same transaction
// as the service mutation so the stored stage never drifts from its source.
// Returns the stage the garment carries afterwards.
func RecomputeStage(tx *gorm.DB, garmentID uuid.UUID) (models.Stage, error) {
	var garment models.Garment
	if err := tx.First(&garment, "id = ?", garmentID).Error; err != nil {
		return "", err
	}

	var services []models.GarmentService
	if err := tx.Where("garment_id = ?", garmentID).Find(&services).Error; err != nil {
		return "", err
	}

	computed := models.ClassifyStage(models.AggregateProgress(services))
	next := models.ApplyAutomaticStage(garment.Stage, computed)
	if next == garment.Stage {
		return next, nil
	}

	if err := tx.Model(&garment).Update("stage", next).Error; err != nil {
		return "", err
	}
	return next, nil
}

// SyncOrderDueDate refreshes the order's cached due date from its garments.
// The order carries the latest garment due date as its controlling date.
func SyncOrderDueDate(tx *gorm.DB, orderID uuid.UUID) error {
	var garments []models.Garment
	if err := tx.Where("order_id = ?", orderID).Find(&garments).Error; err != nil {
		return err
	}
	return tx.Model(&models.Order{}).Where("id = ?", orderID).
		Update("due_date", models.ControllingDueDate(garments)).Error
}

// ReconcileStages is the idempotent batch repair for stage drift: it walks
// every garment in the shop, recomputes the stage from the service rows, and
// fixes mismatches. Done garments are left alone.
func ReconcileStages(db *gorm.DB, shopID uuid.UUID) (int, error) {
	var garments []models.Garment
	if err := db.Preload("Services").Where("shop_id = ?", shopID).Find(&garments).Error; err != nil {
		return 0, err
	}

	fixed := 0
	for i := range garments {
		g := &garments[i]
		if !models.ShouldApplyAutomaticStage(g.Stage) {
			continue
		}
		computed := models.ClassifyStage(models.AggregateProgress(g.Services))
		if computed == g.Stage {
			continue
		}
		if err := db.Model(g).Update("stage", computed).Error; err != nil {
			return fixed, err
		}
		log.Printf("Reconciled garment %s stage %s -> %s", g.ID, g.Stage, computed)
		fixed++
	}
	return fixed, nil
}
