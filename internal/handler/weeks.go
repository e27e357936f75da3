package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/repaart/fleet-scheduler/internal/domain"
	"github.com/repaart/fleet-scheduler/internal/scheduler"
)

// weekWindow resolves the requested week to its local Monday midnight plus
// the seven day keys and the [from, to) query window. An absent weekStart
// parameter means the current week.
func (h *Handler) weekWindow(r *http.Request) (time.Time, []string, time.Time, time.Time, error) {
	loc := h.repository.Location()

	base := time.Now().In(loc)
	if param := r.URL.Query().Get("weekStart"); param != "" {
		parsed, err := time.ParseInLocation("2006-01-02", param, loc)
		if err != nil {
			return time.Time{}, nil, time.Time{}, time.Time{}, err
		}
		base = parsed
	}

	weekStart := h.weekStart(base)
	days := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, scheduler.DayKey(weekStart.AddDate(0, 0, i)))
	}

	return weekStart, days, weekStart, weekStart.AddDate(0, 0, 7), nil
}

type weekViewPayload struct {
	WeekStart string                                 `json:"weekStart"`
	Days      []string                               `json:"days"`
	Rows      []scheduler.CourierRow                 `json:"rows"`
	Coverage  map[string][24]int                     `json:"coverage"`
	Display   map[string]scheduler.DisplayAttributes `json:"display"`
	Stats     domain.WeekStats                       `json:"stats"`
}

func (h *Handler) GetWeekView(w http.ResponseWriter, r *http.Request) {
	weekStart, days, from, to, err := h.weekWindow(r)
	if err != nil {
		h.errorResponse(w, r, "invalid weekStart, expected YYYY-MM-DD")
		return
	}

	franchiseID := h.franchiseID(r)
	cacheKey := h.weekCacheKey(franchiseID, weekStart)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	if cached, err := h.redisClient.Get(ctx, cacheKey).Bytes(); err == nil {
		h.successResponse(w, r, "", json.RawMessage(cached))
		return
	} else if !errors.Is(err, redis.Nil) {
		slog.Error("week view cache read failed", "key", cacheKey, "error", err)
	}

	shifts, err := h.repository.GetShiftsInRange(franchiseID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	courierRecords, err := h.repository.GetCouriersByFranchise(franchiseID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	couriers := make([]domain.Courier, 0, len(courierRecords))
	for _, c := range courierRecords {
		couriers = append(couriers, *c)
	}

	payload := weekViewPayload{
		WeekStart: scheduler.DayKey(weekStart),
		Days:      days,
		Rows:      scheduler.BuildCourierGrid(couriers, scheduler.GroupByDay(shifts), days),
		Coverage:  scheduler.HourlyCoverage(days, shifts),
		Display:   scheduler.BuildDisplayAttributes(couriers),
		Stats:     scheduler.ComputeWeekStats(shifts),
	}

	if encoded, err := json.Marshal(payload); err == nil {
		ttl := time.Duration(h.config.Redis.WeekViewTTL) * time.Second
		if err := h.redisClient.Set(ctx, cacheKey, encoded, ttl).Err(); err != nil {
			slog.Error("week view cache write failed", "key", cacheKey, "error", err)
		}
	}

	h.successResponse(w, r, "", payload)
}

func (h *Handler) GetWeekAudit(w http.ResponseWriter, r *http.Request) {
	_, _, from, to, err := h.weekWindow(r)
	if err != nil {
		h.errorResponse(w, r, "invalid weekStart, expected YYYY-MM-DD")
		return
	}

	franchiseID := h.franchiseID(r)

	shifts, err := h.repository.GetShiftsInRange(franchiseID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	courierRecords, err := h.repository.GetCouriersByFranchise(franchiseID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	couriers := make([]domain.Courier, 0, len(courierRecords))
	for _, c := range courierRecords {
		couriers = append(couriers, *c)
	}

	h.successResponse(w, r, "", scheduler.AuditWeek(couriers, shifts))
}

type costEstimatePayload struct {
	Breakdown      domain.CostBreakdown `json:"breakdown"`
	FormattedTotal string               `json:"formattedTotal"`
}

func (h *Handler) GetWeekCostEstimate(w http.ResponseWriter, r *http.Request) {
	_, _, from, to, err := h.weekWindow(r)
	if err != nil {
		h.errorResponse(w, r, "invalid weekStart, expected YYYY-MM-DD")
		return
	}

	hourlyRate := h.config.Scheduling.HourlyRate
	if param := r.URL.Query().Get("hourlyRate"); param != "" {
		parsed, err := strconv.ParseFloat(param, 64)
		if err != nil || parsed <= 0 {
			h.errorResponse(w, r, "invalid hourlyRate")
			return
		}
		hourlyRate = parsed
	}

	shifts, err := h.repository.GetShiftsInRange(h.franchiseID(r), from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	breakdown := scheduler.EstimateCost(shifts, hourlyRate, h.config.Scheduling.BurdenRate)
	h.successResponse(w, r, "", costEstimatePayload{
		Breakdown:      breakdown,
		FormattedTotal: scheduler.FormatEUR(breakdown.TotalCost),
	})
}
