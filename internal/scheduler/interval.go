package scheduler

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidInterval is returned when a shift does not end strictly after it
// starts. It is raised before any conflict or compliance computation runs.
var ErrInvalidInterval = errors.New("shift end time must be after its start time")

// ValidateInterval rejects empty and inverted intervals.
func ValidateInterval(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidInterval
	}
	return nil
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Half-open semantics: touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DurationHours returns end-start in hours, rounded to one decimal.
func DurationHours(start, end time.Time) float64 {
	return math.Round(end.Sub(start).Hours()*10) / 10
}

// SameCalendarDay compares the local calendar date only.
func SameCalendarDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// DayKey formats t's calendar day as an ISO date, the key used to group
// shifts into week views.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
