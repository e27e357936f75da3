package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

func TestEstimateCost_Empty(t *testing.T) {
	got := EstimateCost(nil, DefaultHourlyRate, DefaultBurdenRate)
	assert.Equal(t, domain.CostBreakdown{}, got)
}

func TestEstimateCost_SingleHour(t *testing.T) {
	shifts := []domain.Shift{shift("s1", "rider-a", at(3, 12, 0), at(3, 13, 0))}

	got := EstimateCost(shifts, 15.0, 0.30)
	assert.InDelta(t, 1.0, got.TotalHours, 1e-9)
	assert.InDelta(t, 15.0, got.BaseCost, 1e-9)
	assert.InDelta(t, 4.5, got.SocialSecurity, 1e-9)
	assert.InDelta(t, 19.5, got.TotalCost, 1e-9)
	assert.Equal(t, 1, got.RidersCount)
}

func TestEstimateCost_DefaultsApplied(t *testing.T) {
	shifts := []domain.Shift{shift("s1", "rider-a", at(3, 12, 0), at(3, 13, 0))}

	got := EstimateCost(shifts, 0, 0)
	assert.InDelta(t, DefaultHourlyRate, got.BaseCost, 1e-9)
	assert.InDelta(t, DefaultHourlyRate*DefaultBurdenRate, got.SocialSecurity, 1e-9)
}

func TestEstimateCost_IgnoresInvertedShifts(t *testing.T) {
	shifts := []domain.Shift{
		shift("s1", "rider-a", at(3, 12, 0), at(3, 16, 0)),
		shift("s2", "rider-b", at(3, 16, 0), at(3, 12, 0)), // inverted, contributes zero
	}

	got := EstimateCost(shifts, 10.0, 0.30)
	assert.InDelta(t, 4.0, got.TotalHours, 1e-9)
	// The inverted shift's courier still counts as a distinct rider.
	assert.Equal(t, 2, got.RidersCount)
}

func TestEstimateCost_DistinctRiders(t *testing.T) {
	shifts := []domain.Shift{
		shift("s1", "rider-a", at(3, 12, 0), at(3, 16, 0)),
		shift("s2", "rider-a", at(3, 20, 0), at(3, 22, 0)),
		shift("s3", "", at(4, 12, 0), at(4, 16, 0)), // unassigned
	}

	got := EstimateCost(shifts, 10.0, 0.30)
	assert.Equal(t, 1, got.RidersCount)
}

func TestComputeWeekStats(t *testing.T) {
	shifts := []domain.Shift{
		shift("s1", "rider-a", at(3, 12, 0), at(3, 16, 0)),
		shift("s2", "", at(3, 20, 0), at(3, 22, 30)),
		shift("s3", "rider-b", at(4, 12, 0), at(4, 12, 0)), // empty, skipped
	}

	got := ComputeWeekStats(shifts)
	assert.Equal(t, 6.5, got.TotalHours)
	assert.Equal(t, 2, got.TotalShifts)
	assert.Equal(t, 1, got.AssignedShifts)
}

func TestFormatEUR(t *testing.T) {
	out := FormatEUR(1234.5)
	assert.Contains(t, out, "1.234,50")
}
