// services/order_query.go
package services

import (
	"fmt"
	"time"

	"tailortrack-backend/models"
	"tailortrack-backend/pagination"
	"tailortrack-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// overFetchFactor controls how many extra rows a locally-filtered page pulls
// from storage before the predicate is applied.
const overFetchFactor = 2

// ListOrders assembles one cursor page of orders. Stage and search predicates
// push into SQL; the "overdue" filter depends on the derived completion state
// of each garment's services, so it over-fetches and filters locally.
func ListOrders(db *gorm.DB, shopID uuid.UUID, today time.Time, req pagination.Request) (pagination.Page[models.Order], error) {
	if err := req.Normalize(); err != nil {
		return pagination.Page[models.Order]{}, err
	}
	if err := pagination.ValidateFilter(req.Filter); err != nil {
		return pagination.Page[models.Order]{}, err
	}

	q := db.Model(&models.Order{}).Where("orders.shop_id = ?", shopID)

	if req.SortField == pagination.SortClientName || req.Search != "" {
		q = q.Joins("JOIN clients ON clients.id = orders.client_id")
	}
	if req.Stage != "" {
		q = q.Where(`EXISTS (SELECT 1 FROM garments
			WHERE garments.order_id = orders.id
			  AND garments.stage = ?
			  AND garments.deleted_at IS NULL)`, req.Stage)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		q = q.Where("(orders.order_number ILIKE ? OR clients.name ILIKE ?)", like, like)
	}
	q = applyCursor(q, "orders", req)
	q = q.Order(pagination.OrderClause("orders", req.SortField, req.Desc)).
		Preload("Client").Preload("Garments.Services")

	localFilter := req.Filter != ""
	fetchLimit := req.Limit + 1
	if localFilter {
		fetchLimit = req.Limit * overFetchFactor
	}

	var rows []models.Order
	if err := q.Limit(fetchLimit).Find(&rows).Error; err != nil {
		return pagination.Page[models.Order]{}, fmt.Errorf("order list fetch failed: %w", err)
	}

	cursorOf := func(o models.Order) pagination.Cursor {
		c := pagination.Cursor{LastID: o.ID, LastCreatedAt: o.CreatedAt}
		switch req.SortField {
		case pagination.SortDueDate:
			c.LastDueDate = o.DueDate
		case pagination.SortClientName:
			c.LastName = o.Client.Name
		case pagination.SortOrderNumber:
			c.LastNumber = o.OrderNumber
		}
		return c
	}

	if !localFilter {
		return pagination.ApplyPlain(rows, req.Limit, cursorOf)
	}
	keep := func(o models.Order) bool { return OrderOverdue(&o, today) }
	return pagination.ApplyLocalFilter(rows, len(rows) == fetchLimit, req.Limit, keep, cursorOf)
}

// ListGarments assembles one cursor page of garments across the shop.
// Supported sort fields: created_at and due_date.
func ListGarments(db *gorm.DB, shopID uuid.UUID, today time.Time, req pagination.Request) (pagination.Page[models.Garment], error) {
	if req.SortField == pagination.SortClientName || req.SortField == pagination.SortOrderNumber {
		return pagination.Page[models.Garment]{}, fmt.Errorf("%w: %q not supported for garments", pagination.ErrInvalidSortField, req.SortField)
	}
	if err := req.Normalize(); err != nil {
		return pagination.Page[models.Garment]{}, err
	}
	if err := pagination.ValidateFilter(req.Filter); err != nil {
		return pagination.Page[models.Garment]{}, err
	}

	q := db.Model(&models.Garment{}).Where("garments.shop_id = ?", shopID)
	if req.Stage != "" {
		q = q.Where("garments.stage = ?", req.Stage)
	}
	if req.Search != "" {
		q = q.Where("garments.label ILIKE ?", "%"+req.Search+"%")
	}
	q = applyCursor(q, "garments", req)
	q = q.Order(pagination.OrderClause("garments", req.SortField, req.Desc)).
		Preload("Services")

	localFilter := req.Filter != ""
	fetchLimit := req.Limit + 1
	if localFilter {
		fetchLimit = req.Limit * overFetchFactor
	}

	var rows []models.Garment
	if err := q.Limit(fetchLimit).Find(&rows).Error; err != nil {
		return pagination.Page[models.Garment]{}, fmt.Errorf("garment list fetch failed: %w", err)
	}

	cursorOf := func(g models.Garment) pagination.Cursor {
		c := pagination.Cursor{LastID: g.ID, LastCreatedAt: g.CreatedAt}
		if req.SortField == pagination.SortDueDate {
			c.LastDueDate = g.DueDate
		}
		return c
	}

	if !localFilter {
		return pagination.ApplyPlain(rows, req.Limit, cursorOf)
	}
	keep := func(g models.Garment) bool { return GarmentOverdue(&g, today) }
	return pagination.ApplyLocalFilter(rows, len(rows) == fetchLimit, req.Limit, keep, cursorOf)
}

// GarmentOverdue evaluates the local "overdue" predicate: past due and not
// Done. The stage is re-derived from the service rows (with the Done guard)
// rather than trusted from the cached column.
func GarmentOverdue(g *models.Garment, today time.Time) bool {
	if g.DueDate == nil {
		return false
	}
	effective := models.ApplyAutomaticStage(g.Stage, models.ClassifyStage(models.AggregateProgress(g.Services)))
	if effective == models.StageDone {
		return false
	}
	return utils.ClassifyDueDate(*g.DueDate, today).IsPast
}

// OrderOverdue reports whether any garment on the order is overdue.
func OrderOverdue(o *models.Order, today time.Time) bool {
	for i := range o.Garments {
		if GarmentOverdue(&o.Garments[i], today) {
			return true
		}
	}
	return false
}

// applyCursor adds the compound (sort_key, id) tie-break condition for the
// requested direction. Nullable sort keys sort NULLS LAST, so once the
// cursor enters the null region only null-keyed rows remain.
func applyCursor(q *gorm.DB, table string, req pagination.Request) *gorm.DB {
	c := req.Cursor
	if c == nil {
		return q
	}
	op := pagination.ComparisonOp(req.Desc)

	switch req.SortField {
	case pagination.SortDueDate:
		if c.LastDueDate == nil {
			return q.Where(fmt.Sprintf("%s.due_date IS NULL AND %s.id %s ?", table, table, op), c.LastID)
		}
		return q.Where(fmt.Sprintf(`(%s.due_date %s ?
			OR (%s.due_date = ? AND %s.id %s ?)
			OR %s.due_date IS NULL)`, table, op, table, table, op, table),
			*c.LastDueDate, *c.LastDueDate, c.LastID)
	case pagination.SortClientName:
		return q.Where(fmt.Sprintf("(clients.name, %s.id) %s (?, ?)", table, op), c.LastName, c.LastID)
	case pagination.SortOrderNumber:
		return q.Where(fmt.Sprintf("(%s.order_number, %s.id) %s (?, ?)", table, table, op), c.LastNumber, c.LastID)
	default:
		return q.Where(fmt.Sprintf("(%s.created_at, %s.id) %s (?, ?)", table, table, op), c.LastCreatedAt, c.LastID)
	}
}
