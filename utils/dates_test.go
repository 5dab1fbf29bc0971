package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBeginningOfDay(t *testing.T) {
	noon := time.Date(2026, 8, 31, 12, 34, 56, 789, time.UTC)
	assert.Equal(t, date(2026, 8, 31), BeginningOfDay(noon))
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(start, end))
}

func TestClassifyDueDateToday(t *testing.T) {
	today := date(2026, 8, 31)
	status := ClassifyDueDate(today, today)
	assert.Equal(t, 0, status.DaysUntilDue)
	assert.True(t, status.IsToday)
	assert.False(t, status.IsPast)
	assert.False(t, status.IsTomorrow)
	assert.Equal(t, "Due today", status.DueLabel())
}

func TestClassifyDueDateTomorrow(t *testing.T) {
	today := date(2026, 8, 31)
	status := ClassifyDueDate(today.AddDate(0, 0, 1), today)
	assert.Equal(t, 1, status.DaysUntilDue)
	assert.True(t, status.IsTomorrow)
	assert.False(t, status.IsToday)
	assert.Equal(t, "Due tomorrow", status.DueLabel())
}

func TestClassifyDueDateOverdue(t *testing.T) {
	today := date(2026, 8, 31)
	status := ClassifyDueDate(today.AddDate(0, 0, -3), today)
	assert.Equal(t, -3, status.DaysUntilDue)
	assert.True(t, status.IsPast)
	assert.False(t, status.IsToday)
	assert.False(t, status.IsTomorrow)
	assert.Equal(t, "3 days overdue", status.DueLabel())
}

func TestClassifyDueDateFuture(t *testing.T) {
	today := date(2026, 8, 31)
	status := ClassifyDueDate(today.AddDate(0, 0, 5), today)
	assert.Equal(t, 5, status.DaysUntilDue)
	assert.False(t, status.IsPast)
	assert.Equal(t, "Due in 5 days", status.DueLabel())
}

func TestClassifyDueDateNormalizesTimeOfDay(t *testing.T) {
	// A due date late tonight still counts as today.
	today := date(2026, 8, 31)
	due := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)
	status := ClassifyDueDate(due, today)
	assert.True(t, status.IsToday)
}

func TestDaysBetweenAcrossDSTTransitions(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// Spring forward: 2026-03-08 is a 23-hour day in New York. The next
	// calendar day is still exactly one day away.
	springToday := time.Date(2026, 3, 8, 0, 0, 0, 0, ny)
	springDue := time.Date(2026, 3, 9, 0, 0, 0, 0, ny)
	assert.Equal(t, 1, DaysBetween(springToday, springDue))

	// Fall back: 2026-11-01 is a 25-hour day.
	fallToday := time.Date(2026, 11, 1, 0, 0, 0, 0, ny)
	fallDue := time.Date(2026, 11, 2, 0, 0, 0, 0, ny)
	assert.Equal(t, 1, DaysBetween(fallToday, fallDue))
}

func TestClassifyDueDateTomorrowOnSpringForward(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	today := time.Date(2026, 3, 8, 0, 0, 0, 0, ny)
	status := ClassifyDueDate(today.AddDate(0, 0, 1), today)
	assert.Equal(t, 1, status.DaysUntilDue)
	assert.True(t, status.IsTomorrow)
	assert.False(t, status.IsToday)
	assert.Equal(t, "Due tomorrow", status.DueLabel())
}

func TestTodayInFallsBackToUTC(t *testing.T) {
	got := TodayIn("Not/AZone")
	want := BeginningOfDay(time.Now().UTC())
	assert.Equal(t, want, got)
}
