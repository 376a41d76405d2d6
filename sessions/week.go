package sessions

import (
	"fmt"
	"time"
)

// MonthYear identifies one calendar month of sessionCalendar documents.
type MonthYear struct {
	Month int // 1-indexed
	Year  int
}

// StartOfWeek returns the Monday midnight on or before t.
func StartOfWeek(t time.Time) time.Time {
	diff := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		diff = 6
	}
	day := t.AddDate(0, 0, -diff)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

// MonthsBetween returns every month from start through end inclusive, in
// calendar order, each once. Nil when end precedes start.
func MonthsBetween(start, end time.Time) []MonthYear {
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())

	var months []MonthYear
	for !cur.After(last) {
		months = append(months, MonthYear{Month: int(cur.Month()), Year: cur.Year()})
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

// RequiredMonths returns the months covering weekStart..weekStart+6d. A week
// spanning a month boundary yields both months, each once.
func RequiredMonths(weekStart time.Time) []MonthYear {
	return MonthsBetween(weekStart, weekStart.AddDate(0, 0, 6))
}

// CalendarDocIDs builds the composite sessionCalendar _ids for every
// pitch/month combination needed to cover the week. Bounded fan-out rather
// than a collection scan.
func CalendarDocIDs(pitchIDs []string, weekStart time.Time) []string {
	return calendarIDs(pitchIDs, RequiredMonths(weekStart))
}

// CalendarDocIDsInRange covers an arbitrary date span: one _id per
// pitch/month for every month the span touches.
func CalendarDocIDsInRange(pitchIDs []string, start, end time.Time) []string {
	return calendarIDs(pitchIDs, MonthsBetween(start, end))
}

func calendarIDs(pitchIDs []string, months []MonthYear) []string {
	ids := make([]string, 0, len(pitchIDs)*len(months))
	for _, pitchID := range pitchIDs {
		for _, my := range months {
			ids = append(ids, fmt.Sprintf("%s:%d:%d", pitchID, my.Month, my.Year))
		}
	}
	return ids
}
