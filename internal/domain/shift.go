package domain

import "time"

// Shift is a time-bounded work assignment for a courier, optionally with a
// vehicle. StartAt/EndAt are absolute timestamps in the franchise's timezone;
// EndAt must be strictly after StartAt. A shift may cross midnight into the
// next calendar day, but never spans more than two days.
type Shift struct {
	ID              string    `json:"id"`
	FranchiseID     string    `json:"franchiseId"`
	CourierID       *string   `json:"courierId"`
	CourierName     string    `json:"courierName,omitempty"`
	VehicleID       *string   `json:"vehicleId"`
	VehiclePlate    string    `json:"vehiclePlate,omitempty"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	IsConfirmed     bool      `json:"isConfirmed"`
	ChangeRequested bool      `json:"changeRequested"`
	ChangeReason    *string   `json:"changeReason"`
	CreatedAt       time.Time `json:"createdAt"`
	Version         int32     `json:"-"`
}
