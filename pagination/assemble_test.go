package pagination

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id      uuid.UUID
	created time.Time
	keep    bool
}

func makeRows(n int, dropEvery int) []row {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]row, n)
	for i := range rows {
		rows[i] = row{
			id:      uuid.New(),
			created: base.Add(time.Duration(i) * time.Hour),
			keep:    dropEvery == 0 || (i+1)%dropEvery != 0,
		}
	}
	return rows
}

func rowCursor(r row) Cursor {
	return Cursor{LastID: r.id, LastCreatedAt: r.created}
}

func keepFn(r row) bool { return r.keep }

func TestApplyLocalFilterFullPageSurvives(t *testing.T) {
	// 40-row over-fetch, every 8th row fails the predicate (5 removed),
	// page size 20: exactly 20 survivors, hasMore from the full raw batch.
	rows := makeRows(40, 8)
	page, err := ApplyLocalFilter(rows, true, 20, keepFn, rowCursor)
	require.NoError(t, err)

	assert.Len(t, page.Items, 20)
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)

	// The cursor pins the last surviving row.
	decoded, err := DecodeToken(*page.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, page.Items[19].id, decoded.LastID)

	for _, item := range page.Items {
		assert.True(t, item.keep)
	}
}

func TestApplyLocalFilterShortRawBatch(t *testing.T) {
	// Storage ran out of rows: hasMore must be false, no cursor.
	rows := makeRows(7, 3)
	page, err := ApplyLocalFilter(rows, false, 20, keepFn, rowCursor)
	require.NoError(t, err)

	assert.Len(t, page.Items, 5)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
}

func TestApplyLocalFilterNothingSurvives(t *testing.T) {
	// Every row fails the predicate but the raw batch was full: the cursor
	// advances past the scanned batch so the client can keep walking.
	rows := makeRows(10, 1)
	page, err := ApplyLocalFilter(rows, true, 5, keepFn, rowCursor)
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)

	decoded, err := DecodeToken(*page.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, rows[9].id, decoded.LastID)
}

func TestApplyLocalFilterEmptyBatch(t *testing.T) {
	page, err := ApplyLocalFilter(nil, false, 20, keepFn, rowCursor)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
}

func TestApplyLocalFilterHasMoreIsConservative(t *testing.T) {
	// A full raw batch reports hasMore even when no matching rows remain
	// behind it. Deliberate over-approximation.
	rows := makeRows(10, 0)
	page, err := ApplyLocalFilter(rows, true, 5, keepFn, rowCursor)
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.True(t, page.HasMore)
}

func TestApplyPlain(t *testing.T) {
	rows := makeRows(21, 0)
	page, err := ApplyPlain(rows, 20, rowCursor)
	require.NoError(t, err)

	assert.Len(t, page.Items, 20)
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)

	decoded, err := DecodeToken(*page.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, rows[19].id, decoded.LastID)
}

func TestApplyPlainLastPage(t *testing.T) {
	rows := makeRows(12, 0)
	page, err := ApplyPlain(rows, 20, rowCursor)
	require.NoError(t, err)

	assert.Len(t, page.Items, 12)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
}

func TestApplyPlainEmpty(t *testing.T) {
	page, err := ApplyPlain([]row{}, 20, rowCursor)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
}

func TestApplyLocalFilterPagesAreDisjoint(t *testing.T) {
	// Walking two pages with the derived cursors never repeats a row.
	rows := makeRows(40, 4)
	first, err := ApplyLocalFilter(rows[:20], true, 10, keepFn, rowCursor)
	require.NoError(t, err)
	require.NotNil(t, first.NextCursor)

	decoded, err := DecodeToken(*first.NextCursor)
	require.NoError(t, err)

	// Simulate the next storage fetch: rows strictly after the cursor.
	var rest []row
	for _, r := range rows {
		if r.created.After(decoded.LastCreatedAt) {
			rest = append(rest, r)
		}
	}
	second, err := ApplyLocalFilter(rest, len(rest) >= 20, 10, keepFn, rowCursor)
	require.NoError(t, err)

	seen := map[uuid.UUID]bool{}
	for _, r := range first.Items {
		seen[r.id] = true
	}
	for _, r := range second.Items {
		require.False(t, seen[r.id], fmt.Sprintf("row %s repeated across pages", r.id))
	}
}
