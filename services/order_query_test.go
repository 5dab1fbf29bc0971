package services

import (
	"testing"
	"time"

	"tailortrack-backend/models"

	"github.com/stretchr/testify/assert"
)

func day(offset int) *time.Time {
	d := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	return &d
}

var today = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func TestGarmentOverdue(t *testing.T) {
	incomplete := []models.GarmentService{{IsDone: false}}

	overdue := models.Garment{Stage: models.StageInProgress, DueDate: day(-2), Services: incomplete}
	assert.True(t, GarmentOverdue(&overdue, today))

	dueToday := models.Garment{Stage: models.StageInProgress, DueDate: day(0), Services: incomplete}
	assert.False(t, GarmentOverdue(&dueToday, today))

	future := models.Garment{Stage: models.StageInProgress, DueDate: day(3), Services: incomplete}
	assert.False(t, GarmentOverdue(&future, today))

	noDueDate := models.Garment{Stage: models.StageInProgress, Services: incomplete}
	assert.False(t, GarmentOverdue(&noDueDate, today))
}

func TestGarmentOverdueDoneSuppressed(t *testing.T) {
	// A picked-up garment is never overdue even when past its due date.
	done := models.Garment{
		Stage:    models.StageDone,
		DueDate:  day(-5),
		Services: []models.GarmentService{{IsDone: false}},
	}
	assert.False(t, GarmentOverdue(&done, today))
}

func TestGarmentOverdueUsesDerivedStage(t *testing.T) {
	// All services complete means Ready For Pickup, which still counts as
	// overdue: the work is done but the garment is waiting past its date.
	ready := models.Garment{
		Stage:    models.StageInProgress, // stale cached value
		DueDate:  day(-1),
		Services: []models.GarmentService{{IsDone: true}},
	}
	assert.True(t, GarmentOverdue(&ready, today))
}

func TestOrderOverdue(t *testing.T) {
	incomplete := []models.GarmentService{{IsDone: false}}

	order := models.Order{Garments: []models.Garment{
		{Stage: models.StageInProgress, DueDate: day(5), Services: incomplete},
		{Stage: models.StageInProgress, DueDate: day(-1), Services: incomplete},
	}}
	assert.True(t, OrderOverdue(&order, today))

	onTime := models.Order{Garments: []models.Garment{
		{Stage: models.StageInProgress, DueDate: day(5), Services: incomplete},
	}}
	assert.False(t, OrderOverdue(&onTime, today))

	empty := models.Order{}
	assert.False(t, OrderOverdue(&empty, today))
}
