package controllers

import (
	"net/http"
	"time"

	"tailortrack-backend/config"
	"tailortrack-backend/models"
	"tailortrack-backend/services"
	"tailortrack-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalClients        int64            `json:"totalClients"`
	ActiveOrders        int64            `json:"activeOrders"`
	StageCounts         map[string]int64 `json:"stageCounts"`
	OverdueGarments     []gin.H          `json:"overdueGarments"`
	DueThisWeek         []gin.H          `json:"dueThisWeek"`
	ReadyForPickup      int64            `json:"readyForPickup"`
	UnpaidBalanceCents  int64            `json:"unpaidBalanceCents"`
	MonthlyRevenueCents int64            `json:"monthlyRevenueCents"`
	TodayAppointments   []gin.H          `json:"todayAppointments"`
}

// GetDashboardOverview assembles the shop's home screen numbers
func GetDashboardOverview(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}

	today := shopToday(shopUUID)
	overview := DashboardOverview{StageCounts: map[string]int64{}}

	config.DB.Model(&models.Client{}).
		Where("shop_id = ? AND is_active = ?", shopUUID, true).
		Count(&overview.TotalClients)

	config.DB.Model(&models.Order{}).
		Where("shop_id = ? AND status = ?", shopUUID, models.OrderStatusActive).
		Count(&overview.ActiveOrders)

	// Stage breakdown straight off the denormalized column.
	type stageCount struct {
		Stage string
		Count int64
	}
	var stageCounts []stageCount
	config.DB.Model(&models.Garment{}).
		Select("stage, COUNT(*) as count").
		Where("shop_id = ?", shopUUID).
		Group("stage").Scan(&stageCounts)
	for _, sc := range stageCounts {
		overview.StageCounts[sc.Stage] = sc.Count
	}
	overview.ReadyForPickup = overview.StageCounts[string(models.StageReadyForPickup)]

	// Overdue and due-this-week use the classifier over the service rows
	// rather than the cached stage.
	var dueGarments []models.Garment
	weekAhead := today.AddDate(0, 0, 7)
	config.DB.Preload("Services").
		Where("shop_id = ? AND due_date IS NOT NULL AND due_date < ? AND stage <> ?",
			shopUUID, weekAhead, models.StageDone).
		Order("due_date ASC").Limit(50).
		Find(&dueGarments)

	overview.OverdueGarments = []gin.H{}
	overview.DueThisWeek = []gin.H{}
	for i := range dueGarments {
		g := &dueGarments[i]
		view := garmentView(g, today)
		if services.GarmentOverdue(g, today) {
			overview.OverdueGarments = append(overview.OverdueGarments, view)
		} else {
			overview.DueThisWeek = append(overview.DueThisWeek, view)
		}
	}

	config.DB.Model(&models.Invoice{}).
		Where("shop_id = ? AND payment_status <> ?", shopUUID, models.PaymentStatusPaid).
		Select("COALESCE(SUM(total_cents - paid_cents), 0)").
		Scan(&overview.UnpaidBalanceCents)

	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	config.DB.Model(&models.Payment{}).
		Where("shop_id = ? AND status = ? AND paid_at >= ?", shopUUID, models.PaymentStateSucceeded, firstOfMonth).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&overview.MonthlyRevenueCents)

	var appointments []models.Appointment
	config.DB.Preload("Client").
		Where("shop_id = ? AND scheduled_at >= ? AND scheduled_at < ? AND status NOT IN ?",
			shopUUID, today, today.AddDate(0, 0, 1),
			[]string{models.AppointmentStatusCancelled, models.AppointmentStatusNoShow}).
		Order("scheduled_at ASC").
		Find(&appointments)
	overview.TodayAppointments = []gin.H{}
	for _, a := range appointments {
		overview.TodayAppointments = append(overview.TodayAppointments, gin.H{
			"id":          a.ID,
			"clientName":  a.Client.Name,
			"type":        a.Type,
			"scheduledAt": a.ScheduledAt,
			"status":      a.Status,
		})
	}

	c.JSON(http.StatusOK, overview)
}

// ReconcileStages is an admin action that repairs stage drift for the shop.
func ReconcileStages(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}

	fixed, err := services.ReconcileStages(config.DB, shopUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reconcile stages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reconciled": fixed})
}
