package scheduler

import (
	"math"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/currency"
	"github.com/go-playground/locales/es"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

const (
	// DefaultHourlyRate is the base labor rate in EUR per worked hour.
	DefaultHourlyRate = 12.0
	// DefaultBurdenRate is the employer social-security surcharge applied
	// on top of the base cost. Approximation, not a payroll tax model.
	DefaultBurdenRate = 0.30
)

// EstimateCost computes the cost breakdown of a set of shifts. Shifts with a
// non-positive duration contribute zero hours and are silently ignored, in
// contrast with the conflict detector, which rejects them outright.
// Non-positive rates fall back to the defaults.
func EstimateCost(shifts []domain.Shift, hourlyRate, burdenRate float64) domain.CostBreakdown {
	if hourlyRate <= 0 {
		hourlyRate = DefaultHourlyRate
	}
	if burdenRate <= 0 {
		burdenRate = DefaultBurdenRate
	}

	var totalMinutes float64
	riders := make(map[string]struct{})

	for _, s := range shifts {
		if s.CourierID != nil {
			riders[*s.CourierID] = struct{}{}
		}
		d := s.EndAt.Sub(s.StartAt)
		if d <= 0 {
			continue
		}
		totalMinutes += d.Minutes()
	}

	totalHours := totalMinutes / 60
	baseCost := totalHours * hourlyRate
	socialSecurity := baseCost * burdenRate

	return domain.CostBreakdown{
		TotalHours:     totalHours,
		BaseCost:       baseCost,
		SocialSecurity: socialSecurity,
		TotalCost:      baseCost + socialSecurity,
		RidersCount:    len(riders),
	}
}

// ComputeWeekStats aggregates the totals stamped on a week of shifts. Hours
// are rounded to two decimals to avoid floating-point noise in stored stats.
func ComputeWeekStats(shifts []domain.Shift) domain.WeekStats {
	stats := domain.WeekStats{}
	var hours float64

	for _, s := range shifts {
		d := s.EndAt.Sub(s.StartAt)
		if d <= 0 {
			continue
		}
		hours += d.Hours()
		stats.TotalShifts++
		if s.CourierID != nil {
			stats.AssignedShifts++
		}
	}

	stats.TotalHours = math.Round(hours*100) / 100
	return stats
}

var esLocale locales.Translator = es.New()

// FormatEUR renders an amount with Spanish grouping and a fixed two-decimal
// format. Presentation helper, not part of the engine contract.
func FormatEUR(amount float64) string {
	return esLocale.FmtCurrency(amount, 2, currency.EUR)
}
