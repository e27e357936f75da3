package scheduler

import (
	"fmt"
	"sort"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

// CourierAuditReport lists one courier's findings over an audited week.
type CourierAuditReport struct {
	CourierID   string                   `json:"courierId"`
	CourierName string                   `json:"courierName"`
	WeeklyHours float64                  `json:"weeklyHours"`
	Issues      []domain.ComplianceIssue `json:"issues"`
}

// WeekAudit is the roster-level report over a full week of shifts: the
// per-courier findings plus a 0-100 score.
type WeekAudit struct {
	Score    int                  `json:"score"`
	Status   string               `json:"status"`
	Stats    domain.WeekStats     `json:"stats"`
	Couriers []CourierAuditReport `json:"couriers"`
}

const (
	criticalPenalty = 15
	warningPenalty  = 5
)

// AuditWeek validates an entire week of shifts at once. Each shift is checked
// against the shifts placed before it so every violation is counted exactly
// once, and couriers with contract hours get a weekly-limit finding when the
// week's total exceeds them. The score starts at 100 and loses 15 points per
// critical and 5 per warning, floored at zero.
func AuditWeek(couriers []domain.Courier, shifts []domain.Shift) WeekAudit {
	audit := WeekAudit{
		Stats:    ComputeWeekStats(shifts),
		Couriers: make([]CourierAuditReport, 0, len(couriers)),
	}

	byCourier := make(map[string][]domain.Shift)
	for _, s := range shifts {
		if s.CourierID == nil || !s.EndAt.After(s.StartAt) {
			continue
		}
		byCourier[*s.CourierID] = append(byCourier[*s.CourierID], s)
	}

	criticals, warnings := 0, 0
	for _, c := range couriers {
		own := byCourier[c.ID]
		sort.SliceStable(own, func(i, j int) bool {
			return own[i].StartAt.Before(own[j].StartAt)
		})

		report := CourierAuditReport{
			CourierID:   c.ID,
			CourierName: c.FullName,
			Issues:      []domain.ComplianceIssue{},
		}
		for i, s := range own {
			report.WeeklyHours += DurationHours(s.StartAt, s.EndAt)
			report.Issues = append(report.Issues, ValidateShiftRules(s, own[:i])...)
		}

		if c.ContractHours > 0 && report.WeeklyHours > float64(c.ContractHours) {
			report.Issues = append(report.Issues, domain.ComplianceIssue{
				Type:     domain.IssueWeeklyLimit,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("weekly total of %.1fh exceeds the contracted %dh", report.WeeklyHours, c.ContractHours),
			})
		}

		for _, issue := range report.Issues {
			if issue.Severity == domain.SeverityCritical {
				criticals++
			} else {
				warnings++
			}
		}
		audit.Couriers = append(audit.Couriers, report)
	}

	score := 100 - criticals*criticalPenalty - warnings*warningPenalty
	if score < 0 {
		score = 0
	}
	audit.Score = score

	switch {
	case score == 100:
		audit.Status = "optimal"
	case score >= 70:
		audit.Status = "warning"
	default:
		audit.Status = "critical"
	}

	return audit
}
