// utils/dates.go
package utils

import (
	"fmt"
	"time"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from start to end. Both dates are
// re-anchored in UTC so a 23- or 25-hour DST transition day still counts
// as exactly one day.
func DaysBetween(start, end time.Time) int {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// TodayIn returns "today" at midnight in the shop's configured time zone,
// falling back to UTC when the zone name doesn't resolve.
func TodayIn(timezone string) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return BeginningOfDay(time.Now().In(loc))
}

// DueStatus is the urgency band of a due date relative to today.
type DueStatus struct {
	DaysUntilDue int  `json:"daysUntilDue"`
	IsPast       bool `json:"isPast"`
	IsToday      bool `json:"isToday"`
	IsTomorrow   bool `json:"isTomorrow"`
}

// ClassifyDueDate normalizes both dates to midnight and bands the signed
// day offset. Both times are expected in the same location.
func ClassifyDueDate(dueDate, today time.Time) DueStatus {
	days := DaysBetween(today, dueDate)
	return DueStatus{
		DaysUntilDue: days,
		IsPast:       days < 0,
		IsToday:      days == 0,
		IsTomorrow:   days == 1,
	}
}

// DueLabel renders the badge text for a due status.
func (d DueStatus) DueLabel() string {
	switch {
	case d.IsToday:
		return "Due today"
	case d.IsTomorrow:
		return "Due tomorrow"
	case d.IsPast:
		return fmt.Sprintf("%d days overdue", -d.DaysUntilDue)
	default:
		return fmt.Sprintf("Due in %d days", d.DaysUntilDue)
	}
}
