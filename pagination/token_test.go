package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	due := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	cursor := Cursor{
		LastID:        uuid.New(),
		LastCreatedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		LastDueDate:   &due,
		LastName:      "Alvarez",
	}

	token, err := EncodeToken(cursor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.Equal(t, cursor.LastID, decoded.LastID)
	assert.True(t, cursor.LastCreatedAt.Equal(decoded.LastCreatedAt))
	require.NotNil(t, decoded.LastDueDate)
	assert.True(t, due.Equal(*decoded.LastDueDate))
	assert.Equal(t, "Alvarez", decoded.LastName)
}

func TestEncodeTokenEmptyCursor(t *testing.T) {
	token, err := EncodeToken(Cursor{})
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestDecodeTokenEmpty(t *testing.T) {
	decoded, err := DecodeToken("")
	require.NoError(t, err)
	assert.Nil(t, decoded)

	decoded, err = DecodeToken("   ")
	require.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestDecodeTokenInvalid(t *testing.T) {
	_, err := DecodeToken("not base64 at all!!!")
	assert.ErrorIs(t, err, ErrInvalidCursor)

	// valid base64, invalid JSON
	_, err = DecodeToken("aGVsbG8")
	assert.ErrorIs(t, err, ErrInvalidCursor)

	// valid JSON, missing id
	_, err = DecodeToken("e30")
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestRequestNormalize(t *testing.T) {
	req := Request{}
	require.NoError(t, req.Normalize())
	assert.Equal(t, DefaultPageSize, req.Limit)
	assert.Equal(t, SortCreatedAt, req.SortField)

	req = Request{Limit: 500, SortField: SortDueDate}
	require.NoError(t, req.Normalize())
	assert.Equal(t, MaxPageSize, req.Limit)

	req = Request{SortField: "price"}
	assert.ErrorIs(t, req.Normalize(), ErrInvalidSortField)
}

func TestValidateFilter(t *testing.T) {
	assert.NoError(t, ValidateFilter(""))
	assert.NoError(t, ValidateFilter("overdue"))
	assert.NoError(t, ValidateFilter("Overdue"))
	assert.Error(t, ValidateFilter("unpaid"))
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "orders.created_at DESC, orders.id DESC", OrderClause("orders", SortCreatedAt, true))
	assert.Equal(t, "orders.created_at ASC, orders.id ASC", OrderClause("orders", SortCreatedAt, false))
	assert.Equal(t, "garments.due_date ASC NULLS LAST, garments.id ASC", OrderClause("garments", SortDueDate, false))
	assert.Equal(t, "clients.name ASC, orders.id ASC", OrderClause("orders", SortClientName, false))
	assert.Equal(t, "orders.order_number DESC, orders.id DESC", OrderClause("orders", SortOrderNumber, true))
}

func TestComparisonOp(t *testing.T) {
	assert.Equal(t, ">", ComparisonOp(false))
	assert.Equal(t, "<", ComparisonOp(true))
}
