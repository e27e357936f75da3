package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

func TestGroupByDay_SingleDay(t *testing.T) {
	grouped := GroupByDay([]domain.Shift{shift("s1", "rider-a", at(3, 12, 0), at(3, 16, 0))})

	require.Len(t, grouped, 1)
	events := grouped["2025-03-03"]
	require.Len(t, events, 1)
	assert.Equal(t, at(3, 12, 0), events[0].VisualStart)
	assert.Equal(t, at(3, 16, 0), events[0].VisualEnd)
	assert.False(t, events[0].IsContinuation)
}

func TestGroupByDay_CrossMidnight(t *testing.T) {
	grouped := GroupByDay([]domain.Shift{shift("s1", "rider-a", at(3, 22, 0), at(4, 2, 0))})

	require.Len(t, grouped, 2)

	first := grouped["2025-03-03"]
	require.Len(t, first, 1)
	assert.Equal(t, at(3, 22, 0), first[0].VisualStart)
	assert.Equal(t, EndOfDay(at(3, 0, 0)), first[0].VisualEnd)
	assert.False(t, first[0].IsContinuation)

	second := grouped["2025-03-04"]
	require.Len(t, second, 1)
	assert.Equal(t, at(4, 0, 0), second[0].VisualStart)
	assert.Equal(t, at(4, 2, 0), second[0].VisualEnd)
	assert.True(t, second[0].IsContinuation)

	// Fragment durations add back up to the full shift at display precision.
	total := DurationHours(first[0].VisualStart, first[0].VisualEnd) +
		DurationHours(second[0].VisualStart, second[0].VisualEnd)
	assert.Equal(t, 4.0, total)
}

func TestGroupByDay_EndsExactlyAtMidnight(t *testing.T) {
	grouped := GroupByDay([]domain.Shift{shift("s1", "rider-a", at(3, 20, 0), at(4, 0, 0))})

	require.Len(t, grouped, 1)
	events := grouped["2025-03-03"]
	require.Len(t, events, 1)
	assert.Equal(t, at(4, 0, 0), events[0].VisualEnd)
	assert.False(t, events[0].IsContinuation)
}

func courier(id, name string, status domain.CourierStatus) domain.Courier {
	return domain.Courier{ID: id, FranchiseID: "fr-1", FullName: name, Status: status}
}

func TestBuildCourierGrid_Ordering(t *testing.T) {
	couriers := []domain.Courier{
		courier("c1", "Zaira Vega", domain.CourierInactive),
		courier("c2", "Marco Díaz", domain.CourierActive),
		courier("c3", "Ana Gómez", domain.CourierOnRoute),
	}

	rows := BuildCourierGrid(couriers, nil, []string{"2025-03-03"})
	require.Len(t, rows, 3)
	assert.Equal(t, "Ana Gómez", rows[0].Courier.FullName)
	assert.Equal(t, "Marco Díaz", rows[1].Courier.FullName)
	assert.Equal(t, "Zaira Vega", rows[2].Courier.FullName)
}

func TestBuildCourierGrid_MergesAdjacentFragments(t *testing.T) {
	shifts := []domain.Shift{
		shift("s1", "c1", at(3, 12, 0), at(3, 16, 0)),
		shift("s2", "c1", at(3, 16, 0), at(3, 20, 0)),
	}
	couriers := []domain.Courier{courier("c1", "Ana Gómez", domain.CourierActive)}

	rows := BuildCourierGrid(couriers, GroupByDay(shifts), []string{"2025-03-03"})
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Days, 1)

	events := rows[0].Days[0].Events
	require.Len(t, events, 1)
	assert.Equal(t, at(3, 12, 0), events[0].VisualStart)
	assert.Equal(t, at(3, 20, 0), events[0].VisualEnd)
	assert.Equal(t, 8.0, rows[0].TotalWeeklyHours)
}

func TestBuildCourierGrid_ContinuationOpensOwnBlock(t *testing.T) {
	// c1 works until midnight, then a cross-midnight shift continues into the
	// next day. The continuation fragment must not merge into anything.
	shifts := []domain.Shift{
		shift("s1", "c1", at(3, 22, 0), at(4, 2, 0)),
		shift("s2", "c1", at(4, 2, 0), at(4, 4, 0)),
	}
	couriers := []domain.Courier{courier("c1", "Ana Gómez", domain.CourierActive)}

	rows := BuildCourierGrid(couriers, GroupByDay(shifts), []string{"2025-03-03", "2025-03-04"})
	require.Len(t, rows, 1)

	day2 := rows[0].Days[1].Events
	require.Len(t, day2, 2)
	assert.True(t, day2[0].IsContinuation)
	assert.Equal(t, at(4, 2, 0), day2[1].VisualStart)
}

func TestBuildCourierGrid_FiltersOtherCouriers(t *testing.T) {
	shifts := []domain.Shift{
		shift("s1", "c1", at(3, 12, 0), at(3, 16, 0)),
		shift("s2", "c2", at(3, 12, 0), at(3, 16, 0)),
		shift("s3", "", at(3, 12, 0), at(3, 16, 0)),
	}
	couriers := []domain.Courier{courier("c1", "Ana Gómez", domain.CourierActive)}

	rows := BuildCourierGrid(couriers, GroupByDay(shifts), []string{"2025-03-03"})
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Days[0].Events, 1)
	assert.Equal(t, "s1", rows[0].Days[0].Events[0].ID)
}

func TestHourlyCoverage(t *testing.T) {
	days := []string{"2025-03-03", "2025-03-04"}
	shifts := []domain.Shift{
		shift("s1", "c1", at(3, 12, 0), at(3, 14, 0)),
		shift("s2", "c2", at(3, 13, 0), at(3, 15, 0)),
		shift("s3", "c1", at(3, 23, 0), at(4, 1, 0)),
	}

	coverage := HourlyCoverage(days, shifts)

	day1 := coverage["2025-03-03"]
	assert.Equal(t, 1, day1[12])
	assert.Equal(t, 2, day1[13])
	assert.Equal(t, 1, day1[14])
	assert.Equal(t, 0, day1[15])
	assert.Equal(t, 1, day1[23])

	day2 := coverage["2025-03-04"]
	assert.Equal(t, 1, day2[0])
	assert.Equal(t, 0, day2[1])
}

func TestAuditWeek_CleanRoster(t *testing.T) {
	couriers := []domain.Courier{courier("c1", "Ana Gómez", domain.CourierActive)}
	shifts := []domain.Shift{
		shift("s1", "c1", at(3, 12, 0), at(3, 16, 0)),
		shift("s2", "c1", at(4, 12, 0), at(4, 16, 0)),
	}

	audit := AuditWeek(couriers, shifts)
	assert.Equal(t, 100, audit.Score)
	assert.Equal(t, "optimal", audit.Status)
	require.Len(t, audit.Couriers, 1)
	assert.Equal(t, 8.0, audit.Couriers[0].WeeklyHours)
	assert.Empty(t, audit.Couriers[0].Issues)
}

func TestAuditWeek_Penalties(t *testing.T) {
	couriers := []domain.Courier{courier("c1", "Ana Gómez", domain.CourierActive)}
	shifts := []domain.Shift{
		shift("s1", "c1", at(3, 12, 0), at(3, 16, 0)),
		shift("s2", "c1", at(3, 15, 0), at(3, 19, 0)), // overlap, critical
	}

	audit := AuditWeek(couriers, shifts)
	assert.Equal(t, 85, audit.Score)
	assert.Equal(t, "warning", audit.Status)
}

func TestAuditWeek_WeeklyContractLimit(t *testing.T) {
	c := courier("c1", "Ana Gómez", domain.CourierActive)
	c.ContractHours = 10
	shifts := []domain.Shift{
		shift("s1", "c1", at(3, 9, 0), at(3, 15, 0)),
		shift("s2", "c1", at(4, 9, 0), at(4, 15, 0)),
	}

	audit := AuditWeek([]domain.Courier{c}, shifts)
	require.Len(t, audit.Couriers, 1)
	weekly := issuesOfType(audit.Couriers[0].Issues, domain.IssueWeeklyLimit)
	require.Len(t, weekly, 1)
	assert.Equal(t, domain.SeverityWarning, weekly[0].Severity)
	assert.Equal(t, 95, audit.Score)
}

func TestAuditWeek_ScoreFlooredAtZero(t *testing.T) {
	couriers := []domain.Courier{courier("c1", "Ana Gómez", domain.CourierActive)}
	var shifts []domain.Shift
	// Eight mutually overlapping shifts pile up far more than 100 points.
	for i := 0; i < 8; i++ {
		shifts = append(shifts, shift(string(rune('a'+i)), "c1", at(3, 10, 0), at(3, 12, 0)))
	}

	audit := AuditWeek(couriers, shifts)
	assert.Equal(t, 0, audit.Score)
	assert.Equal(t, "critical", audit.Status)
}

func TestBuildDisplayAttributes(t *testing.T) {
	couriers := []domain.Courier{
		courier("c2", "Marco Díaz", domain.CourierActive),
		courier("c1", "Ana Gómez", domain.CourierActive),
	}

	attrs := BuildDisplayAttributes(couriers)
	require.Len(t, attrs, 2)
	assert.Equal(t, "AG", attrs["c1"].Initials)
	assert.Equal(t, "MD", attrs["c2"].Initials)
	assert.NotEqual(t, attrs["c1"].Color, attrs["c2"].Color)

	// Input order does not change the assignment.
	reversed := BuildDisplayAttributes([]domain.Courier{couriers[1], couriers[0]})
	assert.Equal(t, attrs, reversed)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "ÁR", initials("álvaro ruiz"))
	assert.Equal(t, "A", initials("Ana"))
	assert.Equal(t, "AG", initials("Ana Gómez Pérez"))
	assert.Equal(t, "??", initials("  "))
}
