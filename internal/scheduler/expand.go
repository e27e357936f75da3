package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

type RecurrencePattern string

const (
	RecurDaily   RecurrencePattern = "daily"
	RecurWeekly  RecurrencePattern = "weekly"
	RecurMonthly RecurrencePattern = "monthly"
)

const (
	MinOccurrences = 2
	MaxOccurrences = 52
)

var (
	ErrOccurrencesOutOfRange = fmt.Errorf("occurrences must be between %d and %d", MinOccurrences, MaxOccurrences)
	ErrUnknownPattern        = errors.New("unknown recurrence pattern")
	ErrEmptyWindow           = errors.New("time window end hour must be after its start hour")
)

// ExpandRecurring produces occurrences new shifts by repeating base at the
// given cadence. Instance i keeps base's time of day offset by i days, weeks,
// or calendar months, and preserves base's duration. Every instance gets a
// fresh identifier; the base shift is never mutated. New instances start
// unconfirmed with no pending change request.
func ExpandRecurring(base domain.Shift, pattern RecurrencePattern, occurrences int) ([]domain.Shift, error) {
	if err := ValidateInterval(base.StartAt, base.EndAt); err != nil {
		return nil, err
	}
	if occurrences < MinOccurrences || occurrences > MaxOccurrences {
		return nil, ErrOccurrencesOutOfRange
	}

	var step func(t time.Time, i int) time.Time
	switch pattern {
	case RecurDaily:
		step = func(t time.Time, i int) time.Time { return t.AddDate(0, 0, i) }
	case RecurWeekly:
		step = func(t time.Time, i int) time.Time { return t.AddDate(0, 0, 7*i) }
	case RecurMonthly:
		step = func(t time.Time, i int) time.Time { return t.AddDate(0, i, 0) }
	default:
		return nil, ErrUnknownPattern
	}

	duration := base.EndAt.Sub(base.StartAt)
	out := make([]domain.Shift, 0, occurrences)
	for i := 1; i <= occurrences; i++ {
		s := base
		s.ID = uuid.NewString()
		s.StartAt = step(base.StartAt, i)
		s.EndAt = s.StartAt.Add(duration)
		s.IsConfirmed = false
		s.ChangeRequested = false
		s.ChangeReason = nil
		out = append(out, s)
	}

	return out, nil
}

type QuickFillPreset string

const (
	PresetLunch  QuickFillPreset = "lunch"
	PresetDinner QuickFillPreset = "dinner"
	PresetSplit  QuickFillPreset = "split"
	PresetCustom QuickFillPreset = "custom"
)

// slotWindow is a same-day time window in whole hours. An end hour of 24
// means midnight of the following day.
type slotWindow struct {
	startHour int
	endHour   int
}

var presetWindows = map[QuickFillPreset][]slotWindow{
	PresetLunch:  {{12, 16}},
	PresetDinner: {{20, 24}},
	PresetSplit:  {{12, 16}, {20, 24}},
}

// QuickFillRequest describes a bulk fill of one courier across several days.
// Days must be franchise-local midnights. With PresetCustom, StartHour and
// EndHour define the window; presets fix the windows themselves.
type QuickFillRequest struct {
	FranchiseID  string
	CourierID    string
	CourierName  string
	VehicleID    *string
	VehiclePlate string
	Days         []time.Time
	Preset       QuickFillPreset
	StartHour    int
	EndHour      int
	Overwrite    bool
}

// ExpansionPlan is what an expansion asks the storage collaborator to do:
// delete DeleteIDs, then create Create, in one atomic batch. The engine only
// computes the plan; it holds no transactional state. Skipped counts the
// requested instances dropped because of conflicts in non-overwrite mode.
type ExpansionPlan struct {
	Create    []domain.Shift `json:"create"`
	DeleteIDs []string       `json:"deleteIds"`
	Requested int            `json:"requested"`
	Created   int            `json:"created"`
	Skipped   int            `json:"skipped"`
}

// QuickFill expands the request into concrete shift instances, one per
// selected day per preset window. Each candidate is conflict-checked against
// the courier's existing shifts: in overwrite mode every colliding shift is
// scheduled for deletion and the candidate still created; otherwise the
// single colliding slot is skipped while the rest of the request proceeds.
func QuickFill(req QuickFillRequest, existing []domain.Shift) (*ExpansionPlan, error) {
	windows, err := resolveWindows(req.Preset, req.StartHour, req.EndHour)
	if err != nil {
		return nil, err
	}

	plan := &ExpansionPlan{}
	work := append([]domain.Shift(nil), existing...)
	deleted := make(map[string]bool)
	placed := make(map[string]bool)

	for _, day := range req.Days {
		for _, w := range windows {
			plan.Requested++

			cand := domain.Shift{
				ID:           uuid.NewString(),
				FranchiseID:  req.FranchiseID,
				CourierID:    &req.CourierID,
				CourierName:  req.CourierName,
				VehicleID:    req.VehicleID,
				VehiclePlate: req.VehiclePlate,
				StartAt:      windowStart(day, w),
				EndAt:        windowEnd(day, w),
			}

			if !placeCandidate(plan, &cand, work, deleted, placed, req.Overwrite) {
				continue
			}
			work = append(work, cand)
		}
	}

	return plan, nil
}

// CloneCourierShifts copies every shift of the source courier starting on one
// of the target days over to the destination courier, preserving time of day
// and vehicle assignment. Conflicts against the destination's own shifts
// follow the same overwrite-or-skip discipline as QuickFill.
func CloneCourierShifts(sourceID, destID, destName string, days []time.Time, existing []domain.Shift, overwrite bool) (*ExpansionPlan, error) {
	targetDays := make(map[string]bool, len(days))
	for _, d := range days {
		targetDays[DayKey(d)] = true
	}

	plan := &ExpansionPlan{}
	work := append([]domain.Shift(nil), existing...)
	deleted := make(map[string]bool)
	placed := make(map[string]bool)

	for _, src := range existing {
		if src.CourierID == nil || *src.CourierID != sourceID {
			continue
		}
		if !targetDays[DayKey(src.StartAt)] {
			continue
		}
		plan.Requested++

		cand := src
		cand.ID = uuid.NewString()
		dest := destID
		cand.CourierID = &dest
		cand.CourierName = destName
		cand.IsConfirmed = false
		cand.ChangeRequested = false
		cand.ChangeReason = nil

		if !placeCandidate(plan, &cand, work, deleted, placed, overwrite) {
			continue
		}
		work = append(work, cand)
	}

	return plan, nil
}

// placeCandidate resolves the candidate against current conflicts and
// records it in the plan. Returns false when the candidate was skipped.
// Overwrite only deletes stored shifts: a conflict with a shift placed
// earlier in the same batch has no row to delete yet, so the candidate is
// skipped instead.
func placeCandidate(plan *ExpansionPlan, cand *domain.Shift, work []domain.Shift, deleted, placed map[string]bool, overwrite bool) bool {
	live := work[:0:0]
	for _, s := range work {
		if !deleted[s.ID] {
			live = append(live, s)
		}
	}

	conflicts := courierConflicts(*cand, live)
	if len(conflicts) > 0 {
		if !overwrite {
			plan.Skipped++
			return false
		}
		for _, c := range conflicts {
			if placed[c.ID] {
				plan.Skipped++
				return false
			}
		}
		for _, c := range conflicts {
			if !deleted[c.ID] {
				deleted[c.ID] = true
				plan.DeleteIDs = append(plan.DeleteIDs, c.ID)
			}
		}
	}

	plan.Create = append(plan.Create, *cand)
	plan.Created++
	placed[cand.ID] = true
	return true
}

func resolveWindows(preset QuickFillPreset, startHour, endHour int) ([]slotWindow, error) {
	if preset == PresetCustom || preset == "" {
		if startHour < 0 || startHour > 23 || endHour < 1 || endHour > 24 || endHour <= startHour {
			return nil, ErrEmptyWindow
		}
		return []slotWindow{{startHour, endHour}}, nil
	}

	windows, ok := presetWindows[preset]
	if !ok {
		return nil, fmt.Errorf("unknown quick-fill preset %q", preset)
	}
	return windows, nil
}

func windowStart(day time.Time, w slotWindow) time.Time {
	return StartOfDay(day).Add(time.Duration(w.startHour) * time.Hour)
}

func windowEnd(day time.Time, w slotWindow) time.Time {
	if w.endHour == 24 {
		return StartOfDay(day.AddDate(0, 0, 1))
	}
	return StartOfDay(day).Add(time.Duration(w.endHour) * time.Hour)
}
