package scheduler

import (
	"github.com/repaart/fleet-scheduler/internal/domain"
)

// FindCourierConflict returns the first existing shift that books the
// candidate's courier in an overlapping interval, or nil. ignoreID excludes
// one shift from the scan, used when editing a shift in place. The candidate
// interval is validated first; an inverted interval is a hard error.
func FindCourierConflict(candidate domain.Shift, existing []domain.Shift, ignoreID string) (*domain.Shift, error) {
	if err := ValidateInterval(candidate.StartAt, candidate.EndAt); err != nil {
		return nil, err
	}
	if candidate.CourierID == nil {
		return nil, nil
	}

	for i := range existing {
		s := &existing[i]
		if ignoreID != "" && s.ID == ignoreID {
			continue
		}
		if s.CourierID == nil || *s.CourierID != *candidate.CourierID {
			continue
		}
		if Overlaps(candidate.StartAt, candidate.EndAt, s.StartAt, s.EndAt) {
			return s, nil
		}
	}

	return nil, nil
}

// FindVehicleConflict is FindCourierConflict keyed on vehicle identity.
func FindVehicleConflict(candidate domain.Shift, existing []domain.Shift, ignoreID string) (*domain.Shift, error) {
	if err := ValidateInterval(candidate.StartAt, candidate.EndAt); err != nil {
		return nil, err
	}
	if candidate.VehicleID == nil {
		return nil, nil
	}

	for i := range existing {
		s := &existing[i]
		if ignoreID != "" && s.ID == ignoreID {
			continue
		}
		if s.VehicleID == nil || *s.VehicleID != *candidate.VehicleID {
			continue
		}
		if Overlaps(candidate.StartAt, candidate.EndAt, s.StartAt, s.EndAt) {
			return s, nil
		}
	}

	return nil, nil
}

// courierConflicts collects every existing shift of the candidate's courier
// whose interval overlaps the candidate's. Used by the overwrite path of the
// expanders, which must delete all colliding shifts, not just the first.
func courierConflicts(candidate domain.Shift, existing []domain.Shift) []domain.Shift {
	if candidate.CourierID == nil {
		return nil
	}

	var out []domain.Shift
	for _, s := range existing {
		if s.CourierID == nil || *s.CourierID != *candidate.CourierID {
			continue
		}
		if Overlaps(candidate.StartAt, candidate.EndAt, s.StartAt, s.EndAt) {
			out = append(out, s)
		}
	}
	return out
}
