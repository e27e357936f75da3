package seed

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/repaart/fleet-scheduler/internal/config"
	"github.com/repaart/fleet-scheduler/internal/domain"
	"github.com/repaart/fleet-scheduler/internal/repository"
	"github.com/repaart/fleet-scheduler/internal/scheduler"
	"github.com/repaart/fleet-scheduler/internal/utils"
)

// demoCouriers is a fixed roster so the demo week looks the same on every
// fresh database.
var demoCouriers = []struct {
	fullName      string
	status        domain.CourierStatus
	contractHours int32
	preset        scheduler.QuickFillPreset
}{
	{"Ana Gómez", domain.CourierActive, 30, scheduler.PresetSplit},
	{"Marco Díaz", domain.CourierActive, 25, scheduler.PresetLunch},
	{"Lucía Pérez", domain.CourierOnRoute, 25, scheduler.PresetDinner},
	{"Javier Ruiz", domain.CourierActive, 40, scheduler.PresetSplit},
	{"Carla Vega", domain.CourierInactive, 20, scheduler.PresetLunch},
}

// SeedDemoWeek fills the current week of the configured franchise with a
// small roster, a few vehicles, and preset shifts for every active courier.
func SeedDemoWeek(r *repository.Repository, cfg *config.Config) {
	franchiseID := cfg.InitialAdmin.FranchiseID

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.User.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("unable to hash the seed manager password", "error", err)
		return
	}
	manager := &domain.User{
		FranchiseID:  franchiseID,
		Username:     "manager",
		PasswordHash: string(passwordHash),
		FullName:     "Demo Manager",
		Email:        "manager@example.com",
		Role:         domain.RoleManager,
	}
	if err := r.CreateUser(manager); err != nil {
		slog.Error("unable to create the demo manager, may already exist", "error", err)
	}

	vehicles := make([]*domain.Vehicle, 0, 3)
	for i := 0; i < 3; i++ {
		vehicle := utils.GenerateRandomVehicle(franchiseID)
		vehicle.IsActive = true
		if err := r.CreateVehicle(vehicle); err != nil {
			slog.Error("unable to create demo vehicle", "error", err)
			return
		}
		vehicles = append(vehicles, vehicle)
	}

	loc := r.Location()
	now := time.Now().In(loc)
	back := (int(now.Weekday()) + 6) % 7
	weekStart := scheduler.StartOfDay(now).AddDate(0, 0, -back)

	days := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, weekStart.AddDate(0, 0, i))
	}

	created := 0
	for i, dc := range demoCouriers {
		courier := utils.GenerateRandomCourier(franchiseID, "example.com")
		courier.FullName = dc.fullName
		courier.Status = dc.status
		courier.ContractHours = dc.contractHours

		if err := r.CreateCourier(courier); err != nil {
			slog.Error("unable to create demo courier", "courier", courier.FullName, "error", err)
			return
		}

		if !courier.Status.IsActive() {
			continue
		}

		var vehicleID *string
		if i < len(vehicles) {
			vehicleID = &vehicles[i].ID
		}

		existing, err := r.GetShiftsInRange(franchiseID, weekStart.AddDate(0, 0, -1), weekStart.AddDate(0, 0, 8))
		if err != nil {
			slog.Error("unable to load the demo week", "error", err)
			return
		}

		plan, err := scheduler.QuickFill(scheduler.QuickFillRequest{
			FranchiseID: franchiseID,
			CourierID:   courier.ID,
			CourierName: courier.FullName,
			VehicleID:   vehicleID,
			Days:        days,
			Preset:      dc.preset,
		}, existing)
		if err != nil {
			slog.Error("unable to expand the demo preset", "courier", courier.FullName, "error", err)
			return
		}

		if err := r.ApplyExpansionPlan(plan.DeleteIDs, plan.Create); err != nil {
			slog.Error("unable to store demo shifts", "courier", courier.FullName, "error", err)
			return
		}
		created += plan.Created
	}

	slog.Info("demo week seeded", "weekStart", scheduler.DayKey(weekStart), "shifts", created)
}
