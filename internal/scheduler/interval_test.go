package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var madrid = mustLoadMadrid()

func mustLoadMadrid() *time.Location {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		panic(err)
	}
	return loc
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.March, day, hour, minute, 0, 0, madrid)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"disjoint", at(3, 10, 0), at(3, 12, 0), at(3, 14, 0), at(3, 16, 0), false},
		{"touching endpoints do not overlap", at(3, 10, 0), at(3, 12, 0), at(3, 12, 0), at(3, 16, 0), false},
		{"touching reversed", at(3, 12, 0), at(3, 16, 0), at(3, 10, 0), at(3, 12, 0), false},
		{"partial overlap", at(3, 10, 0), at(3, 13, 0), at(3, 12, 0), at(3, 16, 0), true},
		{"containment", at(3, 10, 0), at(3, 18, 0), at(3, 12, 0), at(3, 14, 0), true},
		{"identical", at(3, 10, 0), at(3, 12, 0), at(3, 10, 0), at(3, 12, 0), true},
		{"one minute overlap", at(3, 10, 0), at(3, 12, 1), at(3, 12, 0), at(3, 16, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestDurationHours(t *testing.T) {
	assert.Equal(t, 4.0, DurationHours(at(3, 10, 0), at(3, 14, 0)))
	assert.Equal(t, 2.5, DurationHours(at(3, 10, 0), at(3, 12, 30)))
	// 1:59:59 rounds up to 2.0 at one decimal
	assert.Equal(t, 2.0, DurationHours(at(3, 10, 0), at(3, 11, 59).Add(59*time.Second)))
	assert.Equal(t, -4.0, DurationHours(at(3, 14, 0), at(3, 10, 0)))
}

func TestSameCalendarDay(t *testing.T) {
	assert.True(t, SameCalendarDay(at(3, 0, 0), at(3, 23, 59)))
	assert.False(t, SameCalendarDay(at(3, 23, 59), at(4, 0, 0)))
}

func TestValidateInterval(t *testing.T) {
	require.NoError(t, ValidateInterval(at(3, 10, 0), at(3, 10, 1)))
	assert.ErrorIs(t, ValidateInterval(at(3, 10, 0), at(3, 10, 0)), ErrInvalidInterval)
	assert.ErrorIs(t, ValidateInterval(at(3, 12, 0), at(3, 10, 0)), ErrInvalidInterval)
}

func TestDayBounds(t *testing.T) {
	ts := at(3, 15, 42)
	assert.Equal(t, at(3, 0, 0), StartOfDay(ts))
	assert.Equal(t, time.Date(2025, time.March, 3, 23, 59, 59, 0, madrid), EndOfDay(ts))
	assert.Equal(t, "2025-03-03", DayKey(ts))
}
