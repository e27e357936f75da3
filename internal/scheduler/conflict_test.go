package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

func ptr(s string) *string { return &s }

func shift(id, courierID string, start, end time.Time) domain.Shift {
	s := domain.Shift{ID: id, FranchiseID: "fr-1", StartAt: start, EndAt: end}
	if courierID != "" {
		s.CourierID = &courierID
	}
	return s
}

func TestFindCourierConflict(t *testing.T) {
	existing := []domain.Shift{
		shift("s1", "rider-a", at(3, 12, 0), at(3, 16, 0)),
		shift("s2", "rider-b", at(3, 12, 0), at(3, 16, 0)),
	}

	t.Run("same courier strict overlap is returned", func(t *testing.T) {
		cand := shift("cand", "rider-a", at(3, 15, 0), at(3, 18, 0))
		got, err := FindCourierConflict(cand, existing, "")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "s1", got.ID)
	})

	t.Run("different courier never conflicts", func(t *testing.T) {
		cand := shift("cand", "rider-c", at(3, 12, 0), at(3, 16, 0))
		got, err := FindCourierConflict(cand, existing, "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("touching endpoints do not conflict", func(t *testing.T) {
		cand := shift("cand", "rider-a", at(3, 16, 0), at(3, 20, 0))
		got, err := FindCourierConflict(cand, existing, "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ignoreID excludes the edited shift", func(t *testing.T) {
		cand := shift("s1", "rider-a", at(3, 13, 0), at(3, 17, 0))
		got, err := FindCourierConflict(cand, existing, "s1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("unassigned candidate cannot conflict", func(t *testing.T) {
		cand := shift("cand", "", at(3, 12, 0), at(3, 16, 0))
		got, err := FindCourierConflict(cand, existing, "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("inverted interval is rejected before scanning", func(t *testing.T) {
		cand := shift("cand", "rider-a", at(3, 16, 0), at(3, 12, 0))
		_, err := FindCourierConflict(cand, existing, "")
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("zero duration is rejected", func(t *testing.T) {
		cand := shift("cand", "rider-a", at(3, 12, 0), at(3, 12, 0))
		_, err := FindCourierConflict(cand, existing, "")
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestFindVehicleConflict(t *testing.T) {
	booked := shift("s1", "rider-a", at(3, 12, 0), at(3, 16, 0))
	booked.VehicleID = ptr("moto-1")
	existing := []domain.Shift{booked}

	t.Run("same vehicle overlap is returned even across couriers", func(t *testing.T) {
		cand := shift("cand", "rider-b", at(3, 14, 0), at(3, 18, 0))
		cand.VehicleID = ptr("moto-1")
		got, err := FindVehicleConflict(cand, existing, "")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "s1", got.ID)
	})

	t.Run("no vehicle on candidate means no conflict", func(t *testing.T) {
		cand := shift("cand", "rider-b", at(3, 14, 0), at(3, 18, 0))
		got, err := FindVehicleConflict(cand, existing, "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("different vehicle does not conflict", func(t *testing.T) {
		cand := shift("cand", "rider-b", at(3, 14, 0), at(3, 18, 0))
		cand.VehicleID = ptr("moto-2")
		got, err := FindVehicleConflict(cand, existing, "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
