package pagination

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultPageSize is the fallback when the client omits limit.
	DefaultPageSize = 20
	// MaxPageSize caps limit to prevent unbounded queries.
	MaxPageSize = 100
)

// Sort fields supported by the order and garment listings.
const (
	SortCreatedAt   = "created_at"
	SortDueDate     = "due_date"
	SortClientName  = "client_name"
	SortOrderNumber = "order_number"
)

var (
	ErrInvalidCursor    = errors.New("pagination: invalid cursor")
	ErrInvalidSortField = errors.New("pagination: invalid sort field")
)

var sortFields = map[string]struct{}{
	SortCreatedAt:   {},
	SortDueDate:     {},
	SortClientName:  {},
	SortOrderNumber: {},
}

// Cursor pins the position of the last-seen row. ID plus CreatedAt always
// travel together; the field-specific value rides along so the compound
// (sort_key, id) tie-break can be re-applied for any supported sort field.
type Cursor struct {
	LastID        uuid.UUID  `json:"lastId"`
	LastCreatedAt time.Time  `json:"lastCreatedAt"`
	LastDueDate   *time.Time `json:"lastDueDate,omitempty"`
	LastName      string     `json:"lastName,omitempty"`   // client name sort
	LastNumber    string     `json:"lastNumber,omitempty"` // order number sort
}

// Request bundles one page worth of listing parameters.
type Request struct {
	Limit     int
	SortField string
	Desc      bool
	Cursor    *Cursor
	Stage     string // pushed to SQL
	Search    string // pushed to SQL
	Filter    string // e.g. "overdue": evaluated locally via over-fetch
}

// Normalize clamps the limit and validates the sort field.
func (r *Request) Normalize() error {
	if r.Limit <= 0 {
		r.Limit = DefaultPageSize
	}
	if r.Limit > MaxPageSize {
		r.Limit = MaxPageSize
	}
	if r.SortField == "" {
		r.SortField = SortCreatedAt
	}
	if _, ok := sortFields[r.SortField]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSortField, r.SortField)
	}
	return nil
}

// ComparisonOp returns the SQL comparison for the requested direction.
func ComparisonOp(desc bool) string {
	if desc {
		return "<"
	}
	return ">"
}

// OrderClause builds the ORDER BY for a sort field with the id tie-break.
// Nullable sort keys sort last so cursor comparisons stay total.
func OrderClause(table, sortField string, desc bool) string {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	switch sortField {
	case SortDueDate:
		return fmt.Sprintf("%s.due_date %s NULLS LAST, %s.id %s", table, dir, table, dir)
	case SortClientName:
		return fmt.Sprintf("clients.name %s, %s.id %s", dir, table, dir)
	case SortOrderNumber:
		return fmt.Sprintf("%s.order_number %s, %s.id %s", table, dir, table, dir)
	default:
		return fmt.Sprintf("%s.created_at %s, %s.id %s", table, dir, table, dir)
	}
}

// Page is the assembled listing response.
type Page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"nextCursor"`
	HasMore    bool    `json:"hasMore"`
	TotalCount *int64  `json:"totalCount,omitempty"`
}

func validFilter(f string) bool {
	return f == "" || strings.EqualFold(f, "overdue")
}

// ValidateFilter rejects unknown local-filter names.
func ValidateFilter(f string) error {
	if !validFilter(f) {
		return fmt.Errorf("pagination: unsupported filter %q", f)
	}
	return nil
}
