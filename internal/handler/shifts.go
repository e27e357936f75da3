package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/repaart/fleet-scheduler/internal/domain"
	"github.com/repaart/fleet-scheduler/internal/scheduler"
)

// neighborShifts loads every shift that could interact with an interval:
// anything overlapping the surrounding days, wide enough for the daily-total
// and overnight-rest checks.
func (h *Handler) neighborShifts(franchiseID string, start, end time.Time) ([]domain.Shift, error) {
	from := scheduler.StartOfDay(start.In(h.repository.Location())).AddDate(0, 0, -1)
	to := scheduler.StartOfDay(end.In(h.repository.Location())).AddDate(0, 0, 2)
	return h.repository.GetShiftsInRange(franchiseID, from, to)
}

type shiftIssuesPayload struct {
	Shift  *domain.Shift            `json:"shift"`
	Issues []domain.ComplianceIssue `json:"issues"`
}

// checkPlacement runs the conflict and working-time checks for a candidate.
// It writes the rejection itself and reports whether the caller may proceed;
// warnings survive into issues so they can ride along on the success payload.
func (h *Handler) checkPlacement(w http.ResponseWriter, r *http.Request, candidate domain.Shift, ignoreID string, force bool) ([]domain.ComplianceIssue, bool) {
	neighbors, err := h.neighborShifts(candidate.FranchiseID, candidate.StartAt, candidate.EndAt)
	if err != nil {
		h.internalServerError(w, r, err)
		return nil, false
	}

	conflict, err := scheduler.FindCourierConflict(candidate, neighbors, ignoreID)
	if err != nil {
		h.errorResponse(w, r, "shift must end after it starts")
		return nil, false
	}
	if conflict != nil {
		h.rejectResponse(w, r, "the courier already has an overlapping shift", conflict)
		return nil, false
	}

	vehicleConflict, err := scheduler.FindVehicleConflict(candidate, neighbors, ignoreID)
	if err != nil {
		h.errorResponse(w, r, "shift must end after it starts")
		return nil, false
	}
	if vehicleConflict != nil {
		h.rejectResponse(w, r, "the vehicle is already booked for an overlapping shift", vehicleConflict)
		return nil, false
	}

	issues := scheduler.ValidateShiftRules(candidate, filterIgnored(neighbors, ignoreID))
	if len(issues) > 0 && !force {
		h.rejectResponse(w, r, "the shift breaks working-time rules", issues)
		return nil, false
	}

	return issues, true
}

func filterIgnored(shifts []domain.Shift, ignoreID string) []domain.Shift {
	if ignoreID == "" {
		return shifts
	}
	out := make([]domain.Shift, 0, len(shifts))
	for _, s := range shifts {
		if s.ID != ignoreID {
			out = append(out, s)
		}
	}
	return out
}

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	loc := h.repository.Location()

	from, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("from"), loc)
	if err != nil {
		h.errorResponse(w, r, "invalid from, expected YYYY-MM-DD")
		return
	}
	to, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("to"), loc)
	if err != nil {
		h.errorResponse(w, r, "invalid to, expected YYYY-MM-DD")
		return
	}
	if !to.After(from) {
		h.errorResponse(w, r, "to must be after from")
		return
	}

	shifts, err := h.repository.GetShiftsInRange(h.franchiseID(r), from, to.AddDate(0, 0, 1))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "", shifts)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CourierID *string   `json:"courierId"`
		VehicleID *string   `json:"vehicleId"`
		StartAt   time.Time `json:"startAt" validate:"required"`
		EndAt     time.Time `json:"endAt" validate:"required"`
		Force     bool      `json:"force"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := scheduler.ValidateInterval(req.StartAt, req.EndAt); err != nil {
		h.errorResponse(w, r, "shift must end after it starts")
		return
	}

	loc := h.repository.Location()
	candidate := domain.Shift{
		ID:          uuid.NewString(),
		FranchiseID: h.franchiseID(r),
		CourierID:   req.CourierID,
		VehicleID:   req.VehicleID,
		StartAt:     req.StartAt.In(loc),
		EndAt:       req.EndAt.In(loc),
	}

	issues, ok := h.checkPlacement(w, r, candidate, "", req.Force)
	if !ok {
		return
	}

	if err := h.repository.CreateShift(&candidate); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	created, err := h.repository.GetShiftByID(candidate.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateWeekCache(candidate.FranchiseID, candidate.StartAt, candidate.EndAt)
	h.successResponse(w, r, "shift created", shiftIssuesPayload{Shift: created, Issues: issues})
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtxKey).(*domain.Shift)
	h.successResponse(w, r, "", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtxKey).(*domain.Shift)

	var req struct {
		CourierID *string    `json:"courierId"`
		VehicleID *string    `json:"vehicleId"`
		StartAt   *time.Time `json:"startAt"`
		EndAt     *time.Time `json:"endAt"`
		Unassign  bool       `json:"unassign"`
		Force     bool       `json:"force"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	loc := h.repository.Location()
	updated := *shift
	if req.CourierID != nil {
		updated.CourierID = req.CourierID
	}
	if req.VehicleID != nil {
		updated.VehicleID = req.VehicleID
	}
	if req.Unassign {
		updated.CourierID = nil
	}
	if req.StartAt != nil {
		updated.StartAt = req.StartAt.In(loc)
	}
	if req.EndAt != nil {
		updated.EndAt = req.EndAt.In(loc)
	}
	if err := scheduler.ValidateInterval(updated.StartAt, updated.EndAt); err != nil {
		h.errorResponse(w, r, "shift must end after it starts")
		return
	}

	issues, ok := h.checkPlacement(w, r, updated, shift.ID, req.Force)
	if !ok {
		return
	}

	// Any edit voids a previous confirmation and any open change request.
	updated.IsConfirmed = false
	updated.ChangeRequested = false
	updated.ChangeReason = nil

	if err := h.repository.UpdateShift(&updated); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the shift was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	saved, err := h.repository.GetShiftByID(updated.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateWeekCache(shift.FranchiseID, shift.StartAt, shift.EndAt, updated.StartAt, updated.EndAt)
	h.successResponse(w, r, "shift updated", shiftIssuesPayload{Shift: saved, Issues: issues})
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtxKey).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateWeekCache(shift.FranchiseID, shift.StartAt, shift.EndAt)
	h.successResponse(w, r, "shift deleted", nil)
}

func (h *Handler) ConfirmShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtxKey).(*domain.Shift)

	if shift.CourierID == nil {
		h.errorResponse(w, r, "an unassigned shift cannot be confirmed")
		return
	}

	shift.IsConfirmed = true
	shift.ChangeRequested = false
	shift.ChangeReason = nil

	if err := h.repository.UpdateShift(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the shift was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateWeekCache(shift.FranchiseID, shift.StartAt, shift.EndAt)
	h.successResponse(w, r, "shift confirmed", shift)
}

func (h *Handler) RequestShiftChange(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtxKey).(*domain.Shift)

	var req struct {
		Reason string `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if shift.CourierID == nil {
		h.errorResponse(w, r, "an unassigned shift has no one to request a change")
		return
	}

	shift.IsConfirmed = false
	shift.ChangeRequested = true
	shift.ChangeReason = &req.Reason

	if err := h.repository.UpdateShift(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the shift was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	notification := domain.NotificationMessage{
		Type: domain.NotificationShiftChangeRequest,
		To:   h.config.InitialAdmin.Email,
		Data: domain.ShiftChangeRequestData{
			FranchiseID: shift.FranchiseID,
			ShiftID:     shift.ID,
			CourierID:   *shift.CourierID,
			CourierName: shift.CourierName,
			Reason:      req.Reason,
		},
	}
	if err := h.publishNotification(notification); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateWeekCache(shift.FranchiseID, shift.StartAt, shift.EndAt)
	h.successResponse(w, r, "change requested", shift)
}
