package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

func issuesOfType(issues []domain.ComplianceIssue, typ domain.ComplianceIssueType) []domain.ComplianceIssue {
	var out []domain.ComplianceIssue
	for _, i := range issues {
		if i.Type == typ {
			out = append(out, i)
		}
	}
	return out
}

func TestValidateShiftRules_Unassigned(t *testing.T) {
	cand := shift("cand", "", at(3, 10, 0), at(3, 23, 59))
	assert.Empty(t, ValidateShiftRules(cand, nil))
}

func TestValidateShiftRules_Overlap(t *testing.T) {
	existing := []domain.Shift{shift("s1", "rider-a", at(3, 12, 0), at(3, 16, 0))}
	cand := shift("cand", "rider-a", at(3, 15, 0), at(3, 18, 0))

	issues := ValidateShiftRules(cand, existing)
	overlaps := issuesOfType(issues, domain.IssueOverlap)
	require.Len(t, overlaps, 1)
	assert.Equal(t, domain.SeverityCritical, overlaps[0].Severity)
}

func TestValidateShiftRules_DailyLimit(t *testing.T) {
	t.Run("exactly nine hours passes", func(t *testing.T) {
		cand := shift("cand", "rider-a", at(3, 9, 0), at(3, 18, 0))
		issues := ValidateShiftRules(cand, nil)
		assert.Empty(t, issuesOfType(issues, domain.IssueDailyLimit))
	})

	t.Run("nine hours one minute over the day warns once", func(t *testing.T) {
		existing := []domain.Shift{shift("s1", "rider-a", at(3, 8, 0), at(3, 13, 0))}
		cand := shift("cand", "rider-a", at(3, 14, 0), at(3, 18, 6))

		issues := ValidateShiftRules(cand, existing)
		daily := issuesOfType(issues, domain.IssueDailyLimit)
		require.Len(t, daily, 1)
		assert.Equal(t, domain.SeverityWarning, daily[0].Severity)
		assert.Contains(t, daily[0].Message, "9.1h")
	})

	t.Run("a single minute over the cap still warns", func(t *testing.T) {
		cand := shift("cand", "rider-a", at(3, 9, 0), at(3, 18, 1))
		issues := ValidateShiftRules(cand, nil)
		require.Len(t, issuesOfType(issues, domain.IssueDailyLimit), 1)
	})

	t.Run("a single minute over the cap across a split warns", func(t *testing.T) {
		existing := []domain.Shift{shift("s1", "rider-a", at(3, 8, 0), at(3, 13, 0))}
		cand := shift("cand", "rider-a", at(3, 14, 0), at(3, 18, 1))
		issues := ValidateShiftRules(cand, existing)
		require.Len(t, issuesOfType(issues, domain.IssueDailyLimit), 1)
	})

	t.Run("hours on other days do not count", func(t *testing.T) {
		existing := []domain.Shift{shift("s1", "rider-a", at(2, 8, 0), at(2, 17, 0))}
		cand := shift("cand", "rider-a", at(3, 9, 0), at(3, 17, 0))
		issues := ValidateShiftRules(cand, existing)
		assert.Empty(t, issuesOfType(issues, domain.IssueDailyLimit))
	})
}

func TestValidateShiftRules_Rest(t *testing.T) {
	t.Run("same-day split shift is exempt regardless of gap", func(t *testing.T) {
		existing := []domain.Shift{shift("s1", "rider-a", at(3, 10, 0), at(3, 14, 0))}
		cand := shift("cand", "rider-a", at(3, 20, 0), at(3, 22, 0))
		issues := ValidateShiftRules(cand, existing)
		assert.Empty(t, issuesOfType(issues, domain.IssueRest))
	})

	t.Run("nine hour cross-day gap warns once", func(t *testing.T) {
		existing := []domain.Shift{shift("s1", "rider-a", at(3, 19, 0), at(3, 23, 0))}
		cand := shift("cand", "rider-a", at(4, 8, 0), at(4, 12, 0))

		issues := ValidateShiftRules(cand, existing)
		rest := issuesOfType(issues, domain.IssueRest)
		require.Len(t, rest, 1)
		assert.Equal(t, domain.SeverityWarning, rest[0].Severity)
	})

	t.Run("twelve hour cross-day gap passes", func(t *testing.T) {
		existing := []domain.Shift{shift("s1", "rider-a", at(3, 16, 0), at(3, 20, 0))}
		cand := shift("cand", "rider-a", at(4, 8, 0), at(4, 12, 0))
		issues := ValidateShiftRules(cand, existing)
		assert.Empty(t, issuesOfType(issues, domain.IssueRest))
	})

	t.Run("only the immediately preceding shift is considered", func(t *testing.T) {
		existing := []domain.Shift{
			shift("s1", "rider-a", at(3, 8, 0), at(3, 12, 0)),
			shift("s2", "rider-a", at(3, 18, 0), at(3, 20, 0)),
		}
		// 12h since s2, which ended the previous day: fine.
		cand := shift("cand", "rider-a", at(4, 8, 0), at(4, 12, 0))
		issues := ValidateShiftRules(cand, existing)
		assert.Empty(t, issuesOfType(issues, domain.IssueRest))
	})
}

func TestValidateShiftRules_Cumulative(t *testing.T) {
	// One candidate can trip overlap and daily limit at the same time.
	existing := []domain.Shift{shift("s1", "rider-a", at(3, 8, 0), at(3, 14, 0))}
	cand := shift("cand", "rider-a", at(3, 13, 0), at(3, 20, 0))

	issues := ValidateShiftRules(cand, existing)
	assert.Len(t, issuesOfType(issues, domain.IssueOverlap), 1)
	assert.Len(t, issuesOfType(issues, domain.IssueDailyLimit), 1)
}

func TestValidateShiftRules_OtherCourierIgnored(t *testing.T) {
	existing := []domain.Shift{shift("s1", "rider-b", at(3, 12, 0), at(3, 16, 0))}
	cand := shift("cand", "rider-a", at(3, 12, 0), at(3, 16, 0))
	assert.Empty(t, ValidateShiftRules(cand, existing))
}
