package controllers

import (
	"time"

	"tailortrack-backend/models"
	"tailortrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// garmentView decorates a garment row with the derived presentation fields:
// completion progress, progress text, and the due-date chip. A Done garment
// shows "Done" instead of any due-date urgency.
func garmentView(g *models.Garment, today time.Time) gin.H {
	progress := models.AggregateProgress(g.Services)

	view := gin.H{
		"id":         g.ID,
		"orderId":    g.OrderID,
		"label":      g.Label,
		"type":       g.Type,
		"stage":      g.Stage,
		"dueDate":    g.DueDate,
		"eventDate":  g.EventDate,
		"notes":      g.Notes,
		"pickedUpAt": g.PickedUpAt,
		"progress":   progress,
		"totalCents": models.ActiveTotalCents(g.Services),
		"services":   g.Services,
		"createdAt":  g.CreatedAt,
	}

	if text := progress.ProgressText(); text != "" {
		view["progressText"] = text
	}

	// Stage wins over due-date urgency at the presentation layer.
	if g.Stage == models.StageDone {
		view["dueLabel"] = "Done"
	} else if g.DueDate != nil {
		status := utils.ClassifyDueDate(*g.DueDate, today)
		view["dueStatus"] = status
		view["dueLabel"] = status.DueLabel()
	}

	return view
}

// orderView decorates an order with its garment views and controlling due date.
func orderView(o *models.Order, today time.Time) gin.H {
	garments := make([]gin.H, 0, len(o.Garments))
	var totalCents int64
	for i := range o.Garments {
		garments = append(garments, garmentView(&o.Garments[i], today))
		totalCents += models.ActiveTotalCents(o.Garments[i].Services)
	}

	view := gin.H{
		"id":          o.ID,
		"orderNumber": o.OrderNumber,
		"clientId":    o.ClientID,
		"status":      o.Status,
		"dueDate":     o.DueDate,
		"notes":       o.Notes,
		"garments":    garments,
		"totalCents":  totalCents,
		"createdAt":   o.CreatedAt,
	}
	if o.Client.ID != uuid.Nil {
		view["clientName"] = o.Client.Name
	}
	if o.DueDate != nil && o.Status == models.OrderStatusActive {
		view["dueLabel"] = utils.ClassifyDueDate(*o.DueDate, today).DueLabel()
	}
	return view
}
