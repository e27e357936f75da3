package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

func (h *Handler) GetCouriers(w http.ResponseWriter, r *http.Request) {
	couriers, err := h.repository.GetCouriersByFranchise(h.franchiseID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "", couriers)
}

func (h *Handler) CreateCourier(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName      string `json:"fullName" validate:"required"`
		Email         string `json:"email" validate:"required,email"`
		Status        string `json:"status" validate:"omitempty,oneof=active on_route inactive"`
		ContractHours int32  `json:"contractHours" validate:"min=0,max=60"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	status := domain.CourierStatus(req.Status)
	if status == "" {
		status = domain.CourierActive
	}

	courier := &domain.Courier{
		ID:            uuid.NewString(),
		FranchiseID:   h.franchiseID(r),
		FullName:      req.FullName,
		Email:         req.Email,
		Status:        status,
		ContractHours: req.ContractHours,
	}

	if err := h.repository.CreateCourier(courier); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "courier created", courier)
}

func (h *Handler) UpdateCourier(w http.ResponseWriter, r *http.Request) {
	courier := r.Context().Value(CourierCtxKey).(*domain.Courier)

	var req struct {
		FullName      *string `json:"fullName"`
		Email         *string `json:"email" validate:"omitempty,email"`
		Status        *string `json:"status" validate:"omitempty,oneof=active on_route inactive"`
		ContractHours *int32  `json:"contractHours" validate:"omitempty,min=0,max=60"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.FullName != nil {
		courier.FullName = *req.FullName
	}
	if req.Email != nil {
		courier.Email = *req.Email
	}
	if req.Status != nil {
		courier.Status = domain.CourierStatus(*req.Status)
	}
	if req.ContractHours != nil {
		courier.ContractHours = *req.ContractHours
	}

	if err := h.repository.UpdateCourier(courier); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the courier was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "courier updated", courier)
}

func (h *Handler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.repository.GetVehiclesByFranchise(h.franchiseID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "", vehicles)
}

func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plate string `json:"plate" validate:"required"`
		Model string `json:"model"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	vehicle := &domain.Vehicle{
		ID:          uuid.NewString(),
		FranchiseID: h.franchiseID(r),
		Plate:       req.Plate,
		Model:       req.Model,
		IsActive:    true,
	}

	if err := h.repository.CreateVehicle(vehicle); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicle created", vehicle)
}
