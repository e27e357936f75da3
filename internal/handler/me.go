package handler

import (
	"net/http"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtxKey).(*domain.User)
	h.successResponse(w, r, "", myInfo)
}
