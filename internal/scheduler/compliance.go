package scheduler

import (
	"fmt"
	"sort"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

const (
	// MaxDailyHours is the labor cap on hours worked per calendar day.
	MaxDailyHours = 9.0
	// MinRestHours is the minimum gap required between a shift ending one
	// day and the next shift starting on a later day.
	MinRestHours = 12
)

// ValidateShiftRules checks a candidate shift against the courier's existing
// shifts and returns every rule violation found. All checks run
// unconditionally; findings are cumulative and advisory, the caller decides
// whether to block or to prompt and continue. An unassigned candidate
// produces no findings: personal labor rules do not apply to an empty slot.
func ValidateShiftRules(candidate domain.Shift, existing []domain.Shift) []domain.ComplianceIssue {
	issues := []domain.ComplianceIssue{}
	if candidate.CourierID == nil {
		return issues
	}

	courierShifts := make([]domain.Shift, 0, len(existing))
	for _, s := range existing {
		if s.ID == candidate.ID {
			continue
		}
		if s.CourierID != nil && *s.CourierID == *candidate.CourierID {
			courierShifts = append(courierShifts, s)
		}
	}

	// 1. Overlap with any existing shift of the same courier.
	for _, s := range courierShifts {
		if Overlaps(candidate.StartAt, candidate.EndAt, s.StartAt, s.EndAt) {
			issues = append(issues, domain.ComplianceIssue{
				Type:     domain.IssueOverlap,
				Severity: domain.SeverityCritical,
				Message:  "the courier already has a shift in this time range",
			})
			break
		}
	}

	// 2. Daily hour cap over the candidate's start day. Totals accumulate in
	// exact minutes; rounding only happens when formatting the message, so a
	// single minute over the cap is enough to warn.
	dailyMinutes := candidate.EndAt.Sub(candidate.StartAt).Minutes()
	for _, s := range courierShifts {
		if SameCalendarDay(s.StartAt, candidate.StartAt) {
			dailyMinutes += s.EndAt.Sub(s.StartAt).Minutes()
		}
	}
	if dailyMinutes > MaxDailyHours*60 {
		issues = append(issues, domain.ComplianceIssue{
			Type:     domain.IssueDailyLimit,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("daily total of %.1fh exceeds the %.0fh limit", dailyMinutes/60, MaxDailyHours),
		})
	}

	// 3. Rest period before the candidate. The candidate is merged into the
	// list as a tagged entry so its position after sorting is found by tag,
	// never by comparing struct identity.
	type entry struct {
		isCandidate bool
		shift       domain.Shift
	}
	entries := make([]entry, 0, len(courierShifts)+1)
	for _, s := range courierShifts {
		entries = append(entries, entry{shift: s})
	}
	entries = append(entries, entry{isCandidate: true, shift: candidate})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].shift.StartAt.Before(entries[j].shift.StartAt)
	})

	pos := 0
	for i, e := range entries {
		if e.isCandidate {
			pos = i
			break
		}
	}
	if pos > 0 {
		prev := entries[pos-1].shift
		gap := int(candidate.StartAt.Sub(prev.EndAt).Hours())
		// Same-day split shifts (lunch block + dinner block) are exempt:
		// only cross-day rest is enforced.
		if !SameCalendarDay(prev.EndAt, candidate.StartAt) && gap < MinRestHours {
			issues = append(issues, domain.ComplianceIssue{
				Type:     domain.IssueRest,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("only %dh of rest since the previous shift, %dh required", gap, MinRestHours),
			})
		}
	}

	return issues
}
