package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/repaart/fleet-scheduler/internal/domain"
	"github.com/repaart/fleet-scheduler/internal/scheduler"
)

func (h *Handler) ExpandShiftRecurrences(w http.ResponseWriter, r *http.Request) {
	base := r.Context().Value(ShiftCtxKey).(*domain.Shift)

	var req struct {
		Pattern     string `json:"pattern" validate:"required,oneof=daily weekly monthly"`
		Occurrences int    `json:"occurrences" validate:"required,min=2,max=52"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	instances, err := scheduler.ExpandRecurring(*base, scheduler.RecurrencePattern(req.Pattern), req.Occurrences)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	last := instances[len(instances)-1]
	existing, err := h.neighborShifts(base.FranchiseID, base.StartAt, last.EndAt)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// Instances landing on an occupied slot are dropped, the rest proceed.
	plan := &scheduler.ExpansionPlan{}
	work := existing
	for _, inst := range instances {
		plan.Requested++
		courierConflict, err := scheduler.FindCourierConflict(inst, work, "")
		if err != nil {
			h.errorResponse(w, r, "shift must end after it starts")
			return
		}
		vehicleConflict, err := scheduler.FindVehicleConflict(inst, work, "")
		if err != nil {
			h.errorResponse(w, r, "shift must end after it starts")
			return
		}
		if courierConflict != nil || vehicleConflict != nil {
			plan.Skipped++
			continue
		}
		plan.Create = append(plan.Create, inst)
		plan.Created++
		work = append(work, inst)
	}

	if err := h.applyPlan(base.FranchiseID, plan); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if plan.Created > 0 && base.CourierID != nil {
		if courier, err := h.repository.GetCourierByID(*base.CourierID); err == nil {
			if err := h.publishSchedule(courier.Email, base.FranchiseID, base.StartAt, plan); err != nil {
				h.internalServerError(w, r, err)
				return
			}
		}
	}

	h.successResponse(w, r, "recurrences created", plan)
}

func (h *Handler) QuickFill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CourierID string   `json:"courierId" validate:"required"`
		VehicleID *string  `json:"vehicleId"`
		Days      []string `json:"days" validate:"required,min=1,dive,datetime=2006-01-02"`
		Preset    string   `json:"preset"`
		StartHour int      `json:"startHour"`
		EndHour   int      `json:"endHour"`
		Overwrite bool     `json:"overwrite"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	franchiseID := h.franchiseID(r)

	courier, err := h.repository.GetCourierByID(req.CourierID)
	if err != nil || courier.FranchiseID != franchiseID {
		h.errorResponse(w, r, "courier not found")
		return
	}

	var vehiclePlate string
	if req.VehicleID != nil {
		vehicle, err := h.repository.GetVehicleByID(*req.VehicleID)
		if err != nil || vehicle.FranchiseID != franchiseID {
			h.errorResponse(w, r, "vehicle not found")
			return
		}
		vehiclePlate = vehicle.Plate
	}

	days, err := h.parseDays(req.Days)
	if err != nil {
		h.errorResponse(w, r, "invalid day, expected YYYY-MM-DD")
		return
	}

	existing, err := h.daysNeighborShifts(franchiseID, days)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	plan, err := scheduler.QuickFill(scheduler.QuickFillRequest{
		FranchiseID:  franchiseID,
		CourierID:    courier.ID,
		CourierName:  courier.FullName,
		VehicleID:    req.VehicleID,
		VehiclePlate: vehiclePlate,
		Days:         days,
		Preset:       scheduler.QuickFillPreset(req.Preset),
		StartHour:    req.StartHour,
		EndHour:      req.EndHour,
		Overwrite:    req.Overwrite,
	}, existing)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.applyPlan(franchiseID, plan); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if plan.Created > 0 {
		if err := h.publishSchedule(courier.Email, franchiseID, days[0], plan); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "quick fill applied", plan)
}

func (h *Handler) CloneCourier(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceCourierID string   `json:"sourceCourierId" validate:"required"`
		DestCourierID   string   `json:"destCourierId" validate:"required,nefield=SourceCourierID"`
		Days            []string `json:"days" validate:"required,min=1,dive,datetime=2006-01-02"`
		Overwrite       bool     `json:"overwrite"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	franchiseID := h.franchiseID(r)

	dest, err := h.repository.GetCourierByID(req.DestCourierID)
	if err != nil || dest.FranchiseID != franchiseID {
		h.errorResponse(w, r, "destination courier not found")
		return
	}

	days, err := h.parseDays(req.Days)
	if err != nil {
		h.errorResponse(w, r, "invalid day, expected YYYY-MM-DD")
		return
	}

	existing, err := h.daysNeighborShifts(franchiseID, days)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	plan, err := scheduler.CloneCourierShifts(req.SourceCourierID, dest.ID, dest.FullName, days, existing, req.Overwrite)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.applyPlan(franchiseID, plan); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if plan.Created > 0 {
		if err := h.publishSchedule(dest.Email, franchiseID, days[0], plan); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "courier schedule cloned", plan)
}

func (h *Handler) parseDays(raw []string) ([]time.Time, error) {
	loc := h.repository.Location()
	days := make([]time.Time, 0, len(raw))
	for _, d := range raw {
		day, err := time.ParseInLocation("2006-01-02", d, loc)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// daysNeighborShifts loads the shifts surrounding a set of selected days.
func (h *Handler) daysNeighborShifts(franchiseID string, days []time.Time) ([]domain.Shift, error) {
	min, max := days[0], days[0]
	for _, d := range days[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return h.neighborShifts(franchiseID, min, max.AddDate(0, 0, 1))
}

// publishSchedule tells a courier their schedule changed through the
// notification queue.
func (h *Handler) publishSchedule(email, franchiseID string, anchor time.Time, plan *scheduler.ExpansionPlan) error {
	return h.publishNotification(domain.NotificationMessage{
		Type: domain.NotificationSchedulePublished,
		To:   email,
		Data: domain.SchedulePublishedData{
			FranchiseID: franchiseID,
			WeekStart:   scheduler.DayKey(h.weekStart(anchor)),
			Created:     plan.Created,
			Deleted:     len(plan.DeleteIDs),
		},
	})
}

// applyPlan lands an expansion atomically and drops the affected week views
// from the cache.
func (h *Handler) applyPlan(franchiseID string, plan *scheduler.ExpansionPlan) error {
	if len(plan.Create) == 0 && len(plan.DeleteIDs) == 0 {
		return nil
	}

	deleted := make([]domain.Shift, 0, len(plan.DeleteIDs))
	for _, id := range plan.DeleteIDs {
		s, err := h.repository.GetShiftByID(id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return err
		}
		deleted = append(deleted, *s)
	}

	if err := h.repository.ApplyExpansionPlan(plan.DeleteIDs, plan.Create); err != nil {
		return err
	}

	touched := make([]time.Time, 0, 2*(len(plan.Create)+len(deleted)))
	for _, s := range plan.Create {
		touched = append(touched, s.StartAt, s.EndAt)
	}
	for _, s := range deleted {
		touched = append(touched, s.StartAt, s.EndAt)
	}
	h.invalidateWeekCache(franchiseID, touched...)

	return nil
}
