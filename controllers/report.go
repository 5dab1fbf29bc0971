// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"tailortrack-backend/config"
	"tailortrack-backend/models"
	"tailortrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the analytics data. Revenue is integer cents.
type AnalyticsSummary struct {
	CurrentMonthRevenueCents   int64            `json:"currentMonthRevenueCents"`
	MonthGrowth                float64          `json:"monthGrowth"`
	CurrentQuarterRevenueCents int64            `json:"currentQuarterRevenueCents"`
	QuarterGrowth              float64          `json:"quarterGrowth"`
	CurrentYearRevenueCents    int64            `json:"currentYearRevenueCents"`
	YearGrowth                 float64          `json:"yearGrowth"`
	StripeFeeCents             int64            `json:"stripeFeeCents"`
	TopServices                []ServiceSummary `json:"topServices"`
	TopClients                 []ClientSummary  `json:"topClients"`
	QuickStats                 QuickStatistics  `json:"quickStats"`
}

type ServiceSummary struct {
	Name         string `json:"name"`
	Count        int    `json:"count"`
	RevenueCents int64  `json:"revenueCents"`
}

type ClientSummary struct {
	Name       string `json:"name"`
	Orders     int    `json:"orders"`
	SpentCents int64  `json:"spentCents"`
}

type QuickStatistics struct {
	TotalClients        int64   `json:"totalClients"`
	TotalInvoices       int64   `json:"totalInvoices"`
	CompletedOrders     int64   `json:"completedOrders"`
	AvgOrderValueCents  int64   `json:"avgOrderValueCents"`
	AvgTurnaroundDays   float64 `json:"avgTurnaroundDays"`
	GarmentsPickedUpYTD int64   `json:"garmentsPickedUpYtd"`
}

// GetReportAnalytics returns the complete analytics summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}

	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	loc := now.Location()

	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, loc)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	currentMonthRevenue, err := rc.getRevenue(shopUUID, firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}
	lastMonthRevenue, err := rc.getRevenue(shopUUID,
		firstOfMonth.AddDate(0, -1, 0), lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	currentQuarterRevenue, err := rc.getRevenue(shopUUID, rc.getQuarterStart(now), rc.getQuarterEnd(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}
	lastQuarterRevenue, err := rc.getRevenue(shopUUID,
		rc.getQuarterStart(now).AddDate(0, -3, 0), rc.getQuarterEnd(now).AddDate(0, -3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	yearStart := time.Date(currentYear, 1, 1, 0, 0, 0, 0, loc)
	yearEnd := time.Date(currentYear, 12, 31, 23, 59, 59, 0, loc)
	currentYearRevenue, err := rc.getRevenue(shopUUID, yearStart, yearEnd)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}
	lastYearRevenue, err := rc.getRevenue(shopUUID, yearStart.AddDate(-1, 0, 0), yearEnd.AddDate(-1, 0, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	topServices, err := rc.getTopServices(shopUUID, yearStart, yearEnd, 5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top services")
		return
	}
	topClients, err := rc.getTopClients(shopUUID, 5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top clients")
		return
	}
	quickStats, err := rc.getQuickStatistics(shopUUID, yearStart)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get statistics")
		return
	}

	var stripeFees int64
	config.DB.Model(&models.Payment{}).
		Where("shop_id = ? AND status = ? AND paid_at >= ?", shopUUID, models.PaymentStateSucceeded, yearStart).
		Select("COALESCE(SUM(fee_cents), 0)").Scan(&stripeFees)

	c.JSON(http.StatusOK, AnalyticsSummary{
		CurrentMonthRevenueCents:   currentMonthRevenue,
		MonthGrowth:                rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue),
		CurrentQuarterRevenueCents: currentQuarterRevenue,
		QuarterGrowth:              rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue),
		CurrentYearRevenueCents:    currentYearRevenue,
		YearGrowth:                 rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue),
		StripeFeeCents:             stripeFees,
		TopServices:                topServices,
		TopClients:                 topClients,
		QuickStats:                 quickStats,
	})
}

func (rc *ReportController) getRevenue(shopID uuid.UUID, start, end time.Time) (int64, error) {
	var revenue int64
	err := config.DB.Model(&models.Payment{}).
		Where("shop_id = ? AND status = ? AND paid_at BETWEEN ? AND ?",
			shopID, models.PaymentStateSucceeded, start, end).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&revenue).Error
	return revenue, err
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month()) - 1) / 3
	return time.Date(date.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
}

func (rc *ReportController) calculateGrowthPercentage(current, previous int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (float64(current) - float64(previous)) / float64(previous) * 100
}

func (rc *ReportController) getTopServices(shopID uuid.UUID, start, end time.Time, limit int) ([]ServiceSummary, error) {
	var services []ServiceSummary
	err := config.DB.Model(&models.InvoiceItem{}).
		Select("invoice_items.service_name as name, COUNT(*) as count, SUM(invoice_items.total_cents) as revenue_cents").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoices.shop_id = ? AND invoices.invoice_date BETWEEN ? AND ? AND invoices.deleted_at IS NULL",
			shopID, start, end).
		Group("invoice_items.service_name").
		Order("revenue_cents DESC").
		Limit(limit).
		Scan(&services).Error
	return services, err
}

func (rc *ReportController) getTopClients(shopID uuid.UUID, limit int) ([]ClientSummary, error) {
	var clients []ClientSummary
	err := config.DB.Model(&models.Client{}).
		Select("name, total_orders as orders, total_spent_cents as spent_cents").
		Where("shop_id = ?", shopID).
		Order("total_spent_cents DESC").
		Limit(limit).
		Scan(&clients).Error
	return clients, err
}

func (rc *ReportController) getQuickStatistics(shopID uuid.UUID, yearStart time.Time) (QuickStatistics, error) {
	var stats QuickStatistics

	config.DB.Model(&models.Client{}).Where("shop_id = ?", shopID).Count(&stats.TotalClients)
	config.DB.Model(&models.Invoice{}).Where("shop_id = ?", shopID).Count(&stats.TotalInvoices)
	config.DB.Model(&models.Order{}).
		Where("shop_id = ? AND status = ?", shopID, models.OrderStatusCompleted).
		Count(&stats.CompletedOrders)
	config.DB.Model(&models.Garment{}).
		Where("shop_id = ? AND picked_up_at >= ?", shopID, yearStart).
		Count(&stats.GarmentsPickedUpYTD)

	var avgOrder float64
	config.DB.Model(&models.Invoice{}).
		Where("shop_id = ?", shopID).
		Select("COALESCE(AVG(total_cents), 0)").Scan(&avgOrder)
	stats.AvgOrderValueCents = int64(avgOrder)

	// Average days between order creation and garment pickup.
	var avgDays float64
	config.DB.Model(&models.Garment{}).
		Joins("JOIN orders ON orders.id = garments.order_id").
		Where("garments.shop_id = ? AND garments.picked_up_at IS NOT NULL", shopID).
		Select("COALESCE(AVG(EXTRACT(EPOCH FROM (garments.picked_up_at - orders.created_at)) / 86400), 0)").
		Scan(&avgDays)
	stats.AvgTurnaroundDays = avgDays

	return stats, nil
}
