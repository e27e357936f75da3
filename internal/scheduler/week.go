package scheduler

import (
	"sort"
	"time"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

// GroupByDay projects shifts onto calendar days, keyed by ISO date. A shift
// contained in one day yields a single VisualEvent. A shift crossing
// midnight yields two: the fragment on its start day clamped to 23:59:59,
// and a continuation fragment on the next day starting at 00:00:00. A shift
// ending exactly at midnight belongs wholly to its start day.
func GroupByDay(shifts []domain.Shift) map[string][]domain.VisualEvent {
	grouped := make(map[string][]domain.VisualEvent)

	for _, s := range shifts {
		endsAtMidnight := s.EndAt.Equal(StartOfDay(s.EndAt))

		if SameCalendarDay(s.StartAt, s.EndAt) || endsAtMidnight {
			key := DayKey(s.StartAt)
			grouped[key] = append(grouped[key], domain.VisualEvent{
				Shift:       s,
				VisualStart: s.StartAt,
				VisualEnd:   s.EndAt,
			})
			continue
		}

		startKey := DayKey(s.StartAt)
		grouped[startKey] = append(grouped[startKey], domain.VisualEvent{
			Shift:       s,
			VisualStart: s.StartAt,
			VisualEnd:   EndOfDay(s.StartAt),
		})

		endKey := DayKey(s.EndAt)
		grouped[endKey] = append(grouped[endKey], domain.VisualEvent{
			Shift:          s,
			VisualStart:    StartOfDay(s.EndAt),
			VisualEnd:      s.EndAt,
			IsContinuation: true,
		})
	}

	return grouped
}

// DayCell holds one courier's events for one calendar day, chronological,
// with back-to-back fragments merged.
type DayCell struct {
	Date   string               `json:"date"`
	Events []domain.VisualEvent `json:"events"`
}

// CourierRow is one row of the weekly layout grid.
type CourierRow struct {
	Courier          domain.Courier `json:"courier"`
	TotalWeeklyHours float64        `json:"totalWeeklyHours"`
	Days             []DayCell      `json:"days"`
}

// BuildCourierGrid lays out the grouped events as a courier-by-day grid for
// the given days. Within a day, an event whose start exactly equals the
// previous event's end is merged into it by extending its end, producing one
// continuous visual block; continuation fragments are never merge sources,
// they always open their own block. Rows order active couriers first, then
// alphabetically by display name.
func BuildCourierGrid(couriers []domain.Courier, grouped map[string][]domain.VisualEvent, days []string) []CourierRow {
	ordered := append([]domain.Courier(nil), couriers...)
	sort.SliceStable(ordered, func(i, j int) bool {
		ai, aj := ordered[i].Status.IsActive(), ordered[j].Status.IsActive()
		if ai != aj {
			return ai
		}
		return ordered[i].FullName < ordered[j].FullName
	})

	rows := make([]CourierRow, 0, len(ordered))
	for _, c := range ordered {
		row := CourierRow{Courier: c, Days: make([]DayCell, 0, len(days))}

		for _, day := range days {
			var events []domain.VisualEvent
			for _, ev := range grouped[day] {
				if ev.CourierID != nil && *ev.CourierID == c.ID {
					events = append(events, ev)
				}
			}
			sort.SliceStable(events, func(i, j int) bool {
				return events[i].VisualStart.Before(events[j].VisualStart)
			})

			merged := make([]domain.VisualEvent, 0, len(events))
			for _, ev := range events {
				n := len(merged)
				if n > 0 && !ev.IsContinuation && ev.VisualStart.Equal(merged[n-1].VisualEnd) {
					merged[n-1].VisualEnd = ev.VisualEnd
					continue
				}
				merged = append(merged, ev)
			}

			for _, ev := range merged {
				row.TotalWeeklyHours += DurationHours(ev.VisualStart, ev.VisualEnd)
			}
			row.Days = append(row.Days, DayCell{Date: day, Events: merged})
		}

		rows = append(rows, row)
	}

	return rows
}

// HourlyCoverage counts, per day and per hour of day, how many shifts are
// scheduled at the same time. Keys match GroupByDay's.
func HourlyCoverage(days []string, shifts []domain.Shift) map[string][24]int {
	coverage := make(map[string][24]int, len(days))
	for _, d := range days {
		coverage[d] = [24]int{}
	}

	for _, s := range shifts {
		if !s.EndAt.After(s.StartAt) {
			continue
		}
		t := time.Date(s.StartAt.Year(), s.StartAt.Month(), s.StartAt.Day(), s.StartAt.Hour(), 0, 0, 0, s.StartAt.Location())
		for t.Before(s.EndAt) {
			key := DayKey(t)
			if counts, ok := coverage[key]; ok {
				counts[t.Hour()]++
				coverage[key] = counts
			}
			t = t.Add(time.Hour)
		}
	}

	return coverage
}
