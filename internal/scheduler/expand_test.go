package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

func TestExpandRecurring_Weekly(t *testing.T) {
	base := shift("base", "rider-a", at(3, 10, 0), at(3, 14, 0)) // Monday

	out, err := ExpandRecurring(base, RecurWeekly, 4)
	require.NoError(t, err)
	require.Len(t, out, 4)

	for i, s := range out {
		assert.Equal(t, base.StartAt.AddDate(0, 0, 7*(i+1)), s.StartAt)
		assert.Equal(t, 4.0, DurationHours(s.StartAt, s.EndAt))
		assert.NotEqual(t, base.ID, s.ID)
		assert.False(t, s.IsConfirmed)
		assert.False(t, s.ChangeRequested)
	}

	// Base is untouched.
	assert.Equal(t, at(3, 10, 0), base.StartAt)
}

func TestExpandRecurring_DailyAndMonthly(t *testing.T) {
	base := shift("base", "rider-a", at(3, 10, 0), at(3, 14, 0))

	daily, err := ExpandRecurring(base, RecurDaily, 2)
	require.NoError(t, err)
	assert.Equal(t, at(4, 10, 0), daily[0].StartAt)
	assert.Equal(t, at(5, 10, 0), daily[1].StartAt)

	monthly, err := ExpandRecurring(base, RecurMonthly, 2)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.April, 3, 10, 0, 0, 0, madrid), monthly[0].StartAt)
	assert.Equal(t, time.Date(2025, time.May, 3, 10, 0, 0, 0, madrid), monthly[1].StartAt)
}

func TestExpandRecurring_Errors(t *testing.T) {
	base := shift("base", "rider-a", at(3, 10, 0), at(3, 14, 0))

	_, err := ExpandRecurring(base, RecurWeekly, 1)
	assert.ErrorIs(t, err, ErrOccurrencesOutOfRange)

	_, err = ExpandRecurring(base, RecurWeekly, 53)
	assert.ErrorIs(t, err, ErrOccurrencesOutOfRange)

	_, err = ExpandRecurring(base, "fortnightly", 4)
	assert.ErrorIs(t, err, ErrUnknownPattern)

	inverted := shift("base", "rider-a", at(3, 14, 0), at(3, 10, 0))
	_, err = ExpandRecurring(inverted, RecurWeekly, 4)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func quickFillReq(preset QuickFillPreset, days ...time.Time) QuickFillRequest {
	return QuickFillRequest{
		FranchiseID: "fr-1",
		CourierID:   "rider-a",
		CourierName: "Ana Gómez",
		Days:        days,
		Preset:      preset,
	}
}

func TestQuickFill_Presets(t *testing.T) {
	t.Run("lunch", func(t *testing.T) {
		plan, err := QuickFill(quickFillReq(PresetLunch, at(3, 0, 0)), nil)
		require.NoError(t, err)
		require.Len(t, plan.Create, 1)
		assert.Equal(t, at(3, 12, 0), plan.Create[0].StartAt)
		assert.Equal(t, at(3, 16, 0), plan.Create[0].EndAt)
	})

	t.Run("dinner ends at next-day midnight", func(t *testing.T) {
		plan, err := QuickFill(quickFillReq(PresetDinner, at(3, 0, 0)), nil)
		require.NoError(t, err)
		require.Len(t, plan.Create, 1)
		assert.Equal(t, at(3, 20, 0), plan.Create[0].StartAt)
		assert.Equal(t, at(4, 0, 0), plan.Create[0].EndAt)
	})

	t.Run("split makes two shifts per day", func(t *testing.T) {
		plan, err := QuickFill(quickFillReq(PresetSplit, at(3, 0, 0), at(4, 0, 0)), nil)
		require.NoError(t, err)
		assert.Equal(t, 4, plan.Requested)
		assert.Equal(t, 4, plan.Created)
		assert.Len(t, plan.Create, 4)
	})

	t.Run("custom window", func(t *testing.T) {
		req := quickFillReq(PresetCustom, at(3, 0, 0))
		req.StartHour, req.EndHour = 9, 17
		plan, err := QuickFill(req, nil)
		require.NoError(t, err)
		require.Len(t, plan.Create, 1)
		assert.Equal(t, at(3, 9, 0), plan.Create[0].StartAt)
		assert.Equal(t, at(3, 17, 0), plan.Create[0].EndAt)
	})

	t.Run("custom window rejected when empty", func(t *testing.T) {
		req := quickFillReq(PresetCustom, at(3, 0, 0))
		req.StartHour, req.EndHour = 16, 12
		_, err := QuickFill(req, nil)
		assert.ErrorIs(t, err, ErrEmptyWindow)
	})
}

func TestQuickFill_SkipsConflictsWithoutOverwrite(t *testing.T) {
	existing := []domain.Shift{shift("busy", "rider-a", at(3, 13, 0), at(3, 15, 0))}

	plan, err := QuickFill(quickFillReq(PresetSplit, at(3, 0, 0), at(4, 0, 0)), existing)
	require.NoError(t, err)

	assert.Equal(t, 4, plan.Requested)
	assert.Equal(t, 3, plan.Created)
	assert.Equal(t, 1, plan.Skipped)
	assert.Empty(t, plan.DeleteIDs)
}

func TestQuickFill_OverwriteCollectsDeletions(t *testing.T) {
	existing := []domain.Shift{
		shift("busy1", "rider-a", at(3, 12, 30), at(3, 13, 30)),
		shift("busy2", "rider-a", at(3, 14, 0), at(3, 15, 0)),
	}

	req := quickFillReq(PresetLunch, at(3, 0, 0))
	req.Overwrite = true
	plan, err := QuickFill(req, existing)
	require.NoError(t, err)

	assert.Equal(t, 1, plan.Created)
	assert.Zero(t, plan.Skipped)
	assert.ElementsMatch(t, []string{"busy1", "busy2"}, plan.DeleteIDs)
}

func TestQuickFill_OtherCourierUnaffected(t *testing.T) {
	existing := []domain.Shift{shift("busy", "rider-b", at(3, 12, 0), at(3, 16, 0))}

	plan, err := QuickFill(quickFillReq(PresetLunch, at(3, 0, 0)), existing)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Created)
	assert.Zero(t, plan.Skipped)
}

func TestCloneCourierShifts(t *testing.T) {
	existing := []domain.Shift{
		shift("src1", "rider-a", at(3, 12, 0), at(3, 16, 0)),
		shift("src2", "rider-a", at(4, 20, 0), at(4, 23, 0)),
		shift("other", "rider-b", at(3, 9, 0), at(3, 11, 0)),
	}

	t.Run("copies only the selected days", func(t *testing.T) {
		plan, err := CloneCourierShifts("rider-a", "rider-c", "Carla Ruiz", []time.Time{at(3, 0, 0)}, existing, false)
		require.NoError(t, err)
		require.Len(t, plan.Create, 1)

		got := plan.Create[0]
		assert.Equal(t, "rider-c", *got.CourierID)
		assert.Equal(t, "Carla Ruiz", got.CourierName)
		assert.Equal(t, at(3, 12, 0), got.StartAt)
		assert.Equal(t, at(3, 16, 0), got.EndAt)
		assert.NotEqual(t, "src1", got.ID)
		assert.False(t, got.IsConfirmed)
	})

	t.Run("skips destination conflicts without overwrite", func(t *testing.T) {
		blocked := append(existing, shift("dest-busy", "rider-c", at(3, 14, 0), at(3, 18, 0)))
		plan, err := CloneCourierShifts("rider-a", "rider-c", "Carla Ruiz", []time.Time{at(3, 0, 0)}, blocked, false)
		require.NoError(t, err)
		assert.Equal(t, 1, plan.Requested)
		assert.Equal(t, 1, plan.Skipped)
		assert.Empty(t, plan.Create)
	})

	t.Run("overwrite deletes destination conflicts", func(t *testing.T) {
		blocked := append(existing, shift("dest-busy", "rider-c", at(3, 14, 0), at(3, 18, 0)))
		plan, err := CloneCourierShifts("rider-a", "rider-c", "Carla Ruiz", []time.Time{at(3, 0, 0)}, blocked, true)
		require.NoError(t, err)
		assert.Equal(t, 1, plan.Created)
		assert.Equal(t, []string{"dest-busy"}, plan.DeleteIDs)
	})

	t.Run("overwrite never deletes shifts created in the same batch", func(t *testing.T) {
		// Overlapping source shifts clone into overlapping candidates; the
		// second must be skipped, not marked for deleting the first's
		// unstored ID.
		overlapping := []domain.Shift{
			shift("src1", "rider-a", at(3, 10, 0), at(3, 14, 0)),
			shift("src2", "rider-a", at(3, 12, 0), at(3, 16, 0)),
		}
		plan, err := CloneCourierShifts("rider-a", "rider-c", "Carla Ruiz", []time.Time{at(3, 0, 0)}, overlapping, true)
		require.NoError(t, err)

		assert.Equal(t, 2, plan.Requested)
		assert.Equal(t, 1, plan.Created)
		assert.Equal(t, 1, plan.Skipped)
		assert.Empty(t, plan.DeleteIDs)
	})
}
